package analysis

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Givikap120/droidguard/app/replay/droid"
	"github.com/Givikap120/droidguard/framework/math/vector"
)

const fixtureObjects = 20

// encodeReplay writes the raw binary section of a version 5 replay.
func encodeReplay(slots [][]droid.Movement, judgements []droid.ObjectJudgement) []byte {
	var buf bytes.Buffer

	w := func(v any) {
		_ = binary.Write(&buf, binary.BigEndian, v)
	}

	w(int32(len(slots)))

	for _, slot := range slots {
		w(int32(len(slot)))

		for _, m := range slot {
			w(m.Time<<2 | int32(m.Type))

			if m.Type != droid.Release {
				w(math.Float32bits(m.Position.X))
				w(math.Float32bits(m.Position.Y))
			}
		}
	}

	w(int32(len(judgements)))

	for _, j := range judgements {
		w(j.HitOffset)

		raw := droid.EncodeTickset(j.Tickset)
		w(int8(len(raw)))
		buf.Write(raw)

		w(int8(j.Result))
	}

	return buf.Bytes()
}

func circleX(i int) float32 {
	return float32(100 + 50*(i%6))
}

// writeFixture writes a job with a single-finger play of a circle-only map starting at start, and
// returns its path.
func writeFixture(t *testing.T, dir, name string, start int32) string {
	var slot []droid.Movement

	judgements := make([]droid.ObjectJudgement, fixtureObjects)

	var objects strings.Builder

	for i := 0; i < fixtureObjects; i++ {
		time := start + int32(400*i)

		slot = append(slot,
			droid.Movement{Time: time, Type: droid.Press, Position: vector.NewVec2f(circleX(i), 192)},
			droid.Movement{Time: time + 40, Type: droid.Release},
		)

		judgements[i].Result = droid.ResultGreat

		fmt.Fprintf(&objects, "    - {type: circle, time: %d, x: %.0f, y: 192}\n", time, circleX(i))
	}

	replayPath := filepath.Join(dir, name+".bin")
	if err := os.WriteFile(replayPath, encodeReplay([][]droid.Movement{slot}, judgements), 0o644); err != nil {
		t.Fatal(err)
	}

	job := fmt.Sprintf(`name: %s
replay:
  path: %s.bin
  version: 5
  player: tester
  statistics:
    hit300: %d
    max_combo: %d
beatmap:
  name: fixture map
  md5: 0123456789abcdef
  hp: 5
  cs: 4
  od: 8
  ar: 9
  objects:
%s`, name, name, fixtureObjects, fixtureObjects, objects.String())

	jobPath := filepath.Join(dir, name+".yaml")
	if err := os.WriteFile(jobPath, []byte(job), 0o644); err != nil {
		t.Fatal(err)
	}

	return jobPath
}
