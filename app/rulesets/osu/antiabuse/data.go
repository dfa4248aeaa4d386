package antiabuse

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/sirupsen/logrus"
)

func fields(data *orderedmap.OrderedMap[string, any]) logrus.Fields {
	f := make(logrus.Fields, data.Len())

	for el := data.Front(); el != nil; el = el.Next() {
		f[el.Key] = el.Value
	}

	return f
}

// orderedMapToString renders data in insertion order, as "[key=value key=value]".
func orderedMapToString(data *orderedmap.OrderedMap[string, any]) string {
	dataString := "["
	count := data.Len()

	for el := data.Front(); el != nil; el = el.Next() {
		dataString += fmt.Sprintf("%s=%v", el.Key, el.Value)

		count--
		if count > 0 {
			dataString += " "
		}
	}

	return dataString + "]"
}
