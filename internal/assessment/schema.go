package assessment

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind names an inspection category.
type Kind string

const (
	UserHeight Kind = "user_height"
	Slide      Kind = "slide"
	Structure  Kind = "structure"
	Anchorage  Kind = "anchorage"
	Materials  Kind = "materials"
	Fan        Kind = "fan"
	Enclosed   Kind = "enclosed"
)

// Kinds returns every category in declared order.
func Kinds() []Kind {
	return []Kind{UserHeight, Slide, Structure, Anchorage, Materials, Fan, Enclosed}
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := schemas[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Label is the human name of the category.
func (k Kind) Label() string {
	if s, ok := schemas[k]; ok {
		return s.Label
	}
	return string(k)
}

// Field names a stored value on an assessment.
type Field string

// Schema is the fixed declaration of one category's fields. All lists are in
// declared order.
type Schema struct {
	Kind           Kind
	Label          string
	Measurements   []Field
	Texts          []Field // free text that counts toward completion
	Flags          []Field
	CriticalChecks []Field
	AllChecks      []Field // critical first
	Trackable      []Field

	// complete is an extra completeness rule beyond field presence.
	complete func(a *Assessment) bool
}

// SchemaFor returns a copy of the declaration for kind.
func SchemaFor(kind Kind) (Schema, error) {
	s, ok := schemas[kind]
	if !ok {
		return Schema{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return Schema{
		Kind:           s.Kind,
		Label:          s.Label,
		Measurements:   slices.Clone(s.Measurements),
		Texts:          slices.Clone(s.Texts),
		Flags:          slices.Clone(s.Flags),
		CriticalChecks: slices.Clone(s.CriticalChecks),
		AllChecks:      slices.Clone(s.AllChecks),
		Trackable:      slices.Clone(s.Trackable),
	}, nil
}

// CommentFor is the comment field paired with a check or measurement.
func CommentFor(f Field) Field {
	return Field(strings.TrimSuffix(string(f), "_pass") + "_comment")
}

// FieldLabel is the human name of a field, e.g. "Seam Integrity".
func FieldLabel(f Field) string {
	if l, ok := labelOverrides[f]; ok {
		return l
	}
	base := strings.TrimSuffix(string(f), "_pass")
	return cases.Title(language.English).String(strings.ReplaceAll(base, "_", " "))
}

var labelOverrides = map[Field]string{
	"pat_pass":                      "PAT",
	"num_anchors_pass":              "Number of Anchors",
	"exit_number_pass":              "Number of Exits",
	"critical_fall_off_height":      "Critical Fall-off Height",
	"critical_fall_off_height_pass": "Critical Fall-off Height",
}

// ---------------------------------------------------------------------------
// Declarations
// ---------------------------------------------------------------------------

var schemas = map[Kind]*Schema{
	UserHeight: declare(UserHeight, "User Height", decl{
		measurements: []Field{
			"containing_wall_height", "platform_height", "tallest_user_height",
			"play_area_length", "play_area_width", "negative_adjustment",
			"users_at_1000mm", "users_at_1200mm", "users_at_1500mm", "users_at_1800mm",
		},
		flags:       []Field{"permanent_roof"},
		critical:    []Field{"containing_wall_height_pass"},
		nonCritical: []Field{"user_capacity_pass"},
		trackable:   trackMeasurementsAndChecks,
		complete:    wallNotBelowPlatform,
	}),
	Slide: declare(Slide, "Slide", decl{
		measurements: []Field{
			"slide_platform_height", "slide_wall_height", "runout",
			"slide_first_metre_height", "slide_beyond_first_metre_height",
		},
		flags:    []Field{"slide_permanent_roof", "slide_stop_wall"},
		critical: []Field{"slide_wall_height_pass", "runout_pass", "slip_sheet_pass"},
		nonCritical: []Field{
			"clamber_netting_pass", "slide_first_metre_height_pass", "slide_beyond_first_metre_height_pass",
		},
		trackable: trackMeasurementsAndChecks,
	}),
	Structure: declare(Structure, "Structure", decl{
		measurements: []Field{
			"stitch_length", "unit_pressure", "blower_tube_length", "step_ramp_size",
			"critical_fall_off_height", "trough_depth", "evacuation_time",
		},
		critical: []Field{
			"seam_integrity_pass", "lock_stitch_pass", "air_loss_pass",
			"straight_walls_pass", "sharp_edges_pass", "unit_stable_pass",
		},
		nonCritical: []Field{
			"stitch_length_pass", "unit_pressure_pass", "blower_tube_length_pass",
			"step_ramp_size_pass", "critical_fall_off_height_pass", "trough_pass",
			"entrapment_pass", "markings_pass", "grounding_pass", "evacuation_time_pass",
		},
		trackable: trackMeasurementsAndChecks,
	}),
	Anchorage: declare(Anchorage, "Anchorage", decl{
		measurements: []Field{"num_low_anchors", "num_high_anchors"},
		critical:     []Field{"num_anchors_pass", "anchor_type_pass", "pull_strength_pass"},
		nonCritical:  []Field{"anchor_accessories_pass", "anchor_degree_pass"},
		trackable:    trackMeasurementsAndChecks,
	}),
	Materials: declare(Materials, "Materials", decl{
		measurements: []Field{"ropes"},
		critical:     []Field{"fabric_strength_pass", "fire_retardant_pass", "thread_pass"},
		nonCritical: []Field{
			"ropes_pass", "clamber_netting_pass", "retention_netting_pass",
			"zips_pass", "windows_pass", "artwork_pass",
		},
		trackable: trackMeasurementsAndChecks,
	}),
	Fan: declare(Fan, "Fan", decl{
		texts:       []Field{"fan_size_type", "blower_serial"},
		critical:    []Field{"blower_finger_pass", "pat_pass"},
		nonCritical: []Field{"blower_flap_pass", "blower_visual_pass"},
		trackable:   trackChecksAndTexts,
	}),
	Enclosed: declare(Enclosed, "Enclosed", decl{
		measurements: []Field{"exit_number"},
		critical:     []Field{"exit_number_pass", "exit_sign_always_visible_pass"},
		trackable:    trackMeasurementsAndChecks,
	}),
}

type decl struct {
	measurements []Field
	texts        []Field
	flags        []Field
	critical     []Field
	nonCritical  []Field
	trackable    func(s *Schema) []Field
	complete     func(a *Assessment) bool
}

func declare(kind Kind, label string, d decl) *Schema {
	s := &Schema{
		Kind:           kind,
		Label:          label,
		Measurements:   d.measurements,
		Texts:          d.texts,
		Flags:          d.flags,
		CriticalChecks: d.critical,
		AllChecks:      slices.Concat(d.critical, d.nonCritical),
		complete:       d.complete,
	}
	s.Trackable = d.trackable(s)
	return s
}

func trackMeasurementsAndChecks(s *Schema) []Field {
	return slices.Concat(s.Measurements, s.AllChecks)
}

func trackChecksAndTexts(s *Schema) []Field {
	return slices.Concat(s.AllChecks, s.Texts)
}

// wallNotBelowPlatform rejects a containing wall lower than the platform it
// surrounds, which cannot be a real configuration.
func wallNotBelowPlatform(a *Assessment) bool {
	wall := a.Measurement("containing_wall_height")
	platform := a.Measurement("platform_height")
	if wall == nil || platform == nil {
		return false
	}
	return *wall >= *platform
}

func (s *Schema) isMeasurement(f Field) bool { return slices.Contains(s.Measurements, f) }
func (s *Schema) isText(f Field) bool        { return slices.Contains(s.Texts, f) }
func (s *Schema) isFlag(f Field) bool        { return slices.Contains(s.Flags, f) }
func (s *Schema) isCheck(f Field) bool       { return slices.Contains(s.AllChecks, f) }

// isComment reports whether f pairs with a declared check or measurement.
func (s *Schema) isComment(f Field) bool {
	if !strings.HasSuffix(string(f), "_comment") {
		return false
	}
	for _, c := range s.AllChecks {
		if CommentFor(c) == f {
			return true
		}
	}
	for _, m := range s.Measurements {
		if CommentFor(m) == f {
			return true
		}
	}
	return false
}
