package analysis

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Givikap120/droidguard/app/beatmap/difficulty"
	"github.com/Givikap120/droidguard/app/beatmap/objects"
	"github.com/Givikap120/droidguard/app/replay/droid"
	"github.com/Givikap120/droidguard/framework/math/vector"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	VariantStable    = "stable"
	VariantRebalance = "rebalance"
)

// Job is one replay to analyse together with the map it was played on. Job files are YAML
// (or JSON, which the YAML parser also accepts).
type Job struct {
	Name    string      `koanf:"name"`
	Variant string      `koanf:"variant"`
	Replay  ReplaySpec  `koanf:"replay"`
	Beatmap BeatmapSpec `koanf:"beatmap"`

	dir string
}

// ReplaySpec points at a decompressed replay. Offset is where the raw movement data starts,
// the header fields before it are given here.
type ReplaySpec struct {
	Path   string `koanf:"path"`
	Offset int    `koanf:"offset"`

	Version   int    `koanf:"version"`
	Player    string `koanf:"player"`
	Mods      string `koanf:"mods"`
	ExtraMods string `koanf:"extra_mods"`

	Statistics StatisticsSpec `koanf:"statistics"`
}

type StatisticsSpec struct {
	Hit300k  int     `koanf:"hit300k"`
	Hit300   int     `koanf:"hit300"`
	Hit100k  int     `koanf:"hit100k"`
	Hit100   int     `koanf:"hit100"`
	Hit50    int     `koanf:"hit50"`
	Misses   int     `koanf:"misses"`
	MaxCombo int     `koanf:"max_combo"`
	Score    int     `koanf:"score"`
	Accuracy float64 `koanf:"accuracy"`
}

type BeatmapSpec struct {
	Name string `koanf:"name"`
	MD5  string `koanf:"md5"`

	HP float64 `koanf:"hp"`
	CS float64 `koanf:"cs"`
	OD float64 `koanf:"od"`
	AR float64 `koanf:"ar"`

	Objects []ObjectSpec `koanf:"objects"`
	Breaks  []BreakSpec  `koanf:"breaks"`
}

// ObjectSpec is a hit object with its slider path already resolved into nested objects.
type ObjectSpec struct {
	Type     string  `koanf:"type"`
	Time     float64 `koanf:"time"`
	EndTime  float64 `koanf:"end_time"`
	X        float32 `koanf:"x"`
	Y        float32 `koanf:"y"`
	NewCombo bool    `koanf:"new_combo"`

	Repeats int          `koanf:"repeats"`
	Length  float64      `koanf:"length"`
	Nested  []NestedSpec `koanf:"nested"`
}

type NestedSpec struct {
	Kind string  `koanf:"kind"`
	Time float64 `koanf:"time"`
	X    float32 `koanf:"x"`
	Y    float32 `koanf:"y"`
}

type BreakSpec struct {
	Start float64 `koanf:"start"`
	End   float64 `koanf:"end"`
}

func LoadJob(path string) (*Job, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadJob, path, err)
	}

	job := &Job{Variant: VariantStable}
	if err := k.UnmarshalWithConf("", job, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadJob, path, err)
	}

	job.dir = filepath.Dir(path)

	if job.Name == "" {
		job.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if err := job.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return job, nil
}

func (j *Job) validate() error {
	switch j.Variant {
	case VariantStable, VariantRebalance:
	default:
		return fmt.Errorf("%w: unknown variant %q", ErrInvalidJob, j.Variant)
	}

	if j.Replay.Path == "" {
		return fmt.Errorf("%w: no replay path", ErrInvalidJob)
	}

	if len(j.Beatmap.Objects) == 0 {
		return fmt.Errorf("%w: beatmap has no objects", ErrInvalidJob)
	}

	return nil
}

// ReplayPath resolves the replay path against the job file's directory.
func (j *Job) ReplayPath() string {
	if filepath.IsAbs(j.Replay.Path) || j.dir == "" {
		return j.Replay.Path
	}

	return filepath.Join(j.dir, j.Replay.Path)
}

func (j *Job) Difficulty() *difficulty.Difficulty {
	return difficulty.NewDifficulty(j.Beatmap.HP, j.Beatmap.CS, j.Beatmap.OD, j.Beatmap.AR)
}

func (j *Job) Header() droid.Header {
	s := j.Replay.Statistics

	return droid.Header{
		Version:        j.Replay.Version,
		MapName:        j.Beatmap.Name,
		MD5:            j.Beatmap.MD5,
		PlayerName:     j.Replay.Player,
		ModString:      j.Replay.Mods,
		ExtraModString: j.Replay.ExtraMods,
		Statistics: droid.Statistics{
			Hit300k:   s.Hit300k,
			Hit300:    s.Hit300,
			Hit100k:   s.Hit100k,
			Hit100:    s.Hit100,
			Hit50:     s.Hit50,
			Misses:    s.Misses,
			MaxCombo:  s.MaxCombo,
			Score:     s.Score,
			Accuracy:  s.Accuracy,
			FullCombo: s.Misses == 0,
		},
	}
}

func (j *Job) BuildBeatmap() (*objects.Beatmap, error) {
	b := &objects.Beatmap{Name: j.Beatmap.Name, MD5: j.Beatmap.MD5}

	lastTime := 0.0

	for i, o := range j.Beatmap.Objects {
		if i > 0 && o.Time < lastTime {
			return nil, fmt.Errorf("%w: object %d starts at %.0f, before the previous one", ErrInvalidJob, i, o.Time)
		}

		lastTime = o.Time

		position := vector.NewVec2f(o.X, o.Y)
		newCombo := o.NewCombo || i == 0

		switch strings.ToLower(o.Type) {
		case "", "circle":
			b.HitObjects = append(b.HitObjects, objects.NewCircle(i, o.Time, position, newCombo))
		case "spinner":
			if o.EndTime < o.Time {
				return nil, fmt.Errorf("%w: spinner %d ends before it starts", ErrInvalidJob, i)
			}

			b.HitObjects = append(b.HitObjects, objects.NewSpinner(i, o.Time, o.EndTime, newCombo))
		case "slider":
			nested, err := buildNested(i, o)
			if err != nil {
				return nil, err
			}

			b.HitObjects = append(b.HitObjects, objects.NewSlider(i, o.Time, position, newCombo, nested, o.Repeats, o.Length))
		default:
			return nil, fmt.Errorf("%w: object %d has unknown type %q", ErrInvalidJob, i, o.Type)
		}
	}

	for _, br := range j.Beatmap.Breaks {
		b.Breaks = append(b.Breaks, objects.BreakPeriod{Start: br.Start, End: br.End})
	}

	return b, nil
}

var nestedKinds = map[string]objects.NestedKind{
	"head":   objects.NestedHead,
	"tick":   objects.NestedTick,
	"repeat": objects.NestedRepeat,
	"tail":   objects.NestedTail,
}

func buildNested(index int, o ObjectSpec) ([]objects.NestedObject, error) {
	if len(o.Nested) == 0 {
		return nil, fmt.Errorf("%w: slider %d has no nested objects", ErrInvalidJob, index)
	}

	nested := make([]objects.NestedObject, 0, len(o.Nested))

	for k, n := range o.Nested {
		kind, ok := nestedKinds[strings.ToLower(n.Kind)]
		if !ok {
			return nil, fmt.Errorf("%w: slider %d nested %d has unknown kind %q", ErrInvalidJob, index, k, n.Kind)
		}

		if n.Time < o.Time {
			return nil, fmt.Errorf("%w: slider %d nested %d is before the slider", ErrInvalidJob, index, k)
		}

		nested = append(nested, objects.NestedObject{Kind: kind, Time: n.Time, Position: vector.NewVec2f(n.X, n.Y)})
	}

	return nested, nil
}
