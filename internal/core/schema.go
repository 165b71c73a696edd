package core

// schema.go defines the field schema shared by the codecs, the validator and
// the grid: field order, serialized positions, grid headers and the
// validation rule of every field in every validation mode.
//
// The tables are built once at init and checked exhaustively. A field
// without a spec or without a rule for some mode is a programming error and
// panics at startup rather than surfacing as a missed validation later.

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/JonMunkholm/laptops/internal/grid"
)

var specs = [fieldCount]FieldSpec{
	{Field: FieldID, Key: "id", Label: "Lp.", Index: -1, Kind: KindNumeric},
	{Field: FieldManufacturer, Key: "manufacturer", Label: "Producent", Index: 0, Kind: KindText},
	{Field: FieldScreenDiagonal, Key: "screenDiagonal", Label: "Przekątna ekranu", Index: 1, Kind: KindText},
	{Field: FieldScreenResolution, Key: "screenResolution", Label: "Rozdzielczość ekranu", Index: 2, Kind: KindText},
	{Field: FieldScreenSurfaceType, Key: "screenSurfaceType", Label: "Typ powierzchni ekranu", Index: 3, Kind: KindText},
	{Field: FieldIsTouchScreen, Key: "isTouchScreen", Label: "Ekran dotykowy", Index: 4, Kind: KindEnum},
	{Field: FieldCPUName, Key: "cpuName", Label: "Procesor", Index: 5, Kind: KindText},
	{Field: FieldCPUCores, Key: "cpuCores", Label: "Ilość rdzeni procesora", Index: 6, Kind: KindNumeric},
	{Field: FieldCPUClockSpeed, Key: "cpuClockSpeed", Label: "Taktowanie procesora", Index: 7, Kind: KindText},
	{Field: FieldRAMSize, Key: "ramSize", Label: "Ilość pamięci RAM", Index: 8, Kind: KindText},
	{Field: FieldDiskSize, Key: "diskSize", Label: "Rozmiar dysku", Index: 9, Kind: KindText},
	{Field: FieldDiskType, Key: "diskType", Label: "Typ dysku", Index: 10, Kind: KindEnum},
	{Field: FieldGPUName, Key: "gpuName", Label: "Karta graficzna", Index: 11, Kind: KindText},
	{Field: FieldGPUMemory, Key: "gpuMemory", Label: "Ilość pamięci karty graficznej", Index: 12, Kind: KindText},
	{Field: FieldOSName, Key: "osName", Label: "System operacyjny", Index: 13, Kind: KindText},
	{Field: FieldOpticalDriveType, Key: "opticalDriveType", Label: "Typ napędu optycznego", Index: 14, Kind: KindEnum},
}

// Rule is a compiled validation predicate over a candidate's textual form.
type Rule struct {
	Pattern *regexp.Regexp
	Message string
}

// Match reports whether value satisfies the rule.
func (r Rule) Match(value string) bool {
	return r.Pattern.MatchString(value)
}

var (
	textRule      = Rule{regexp.MustCompile(`^[A-Za-z0-9_.\-]{0,10}$`), "must be at most 10 letters, digits, '_', '.' or '-'"}
	diagonalRule  = Rule{regexp.MustCompile(`^[A-Za-z0-9_.\-"]{0,10}$`), "must be at most 10 letters, digits, '_', '.', '-' or '\"'"}
	digitsRule    = Rule{regexp.MustCompile(`^[0-9]{0,10}$`), "must be a sequence of at most 10 digits"}
	anyRule       = Rule{regexp.MustCompile(`.`), "must not be empty"}
	yesNoRule     = Rule{regexp.MustCompile(`^(Tak|Nie)$`), "must be Tak or Nie"}
	yesNoPrefix   = Rule{regexp.MustCompile(`^(Tak|Nie)`), "must start with Tak or Nie"}
	diskRule      = Rule{regexp.MustCompile(`^(HDD|SSD)$`), "must be HDD or SSD"}
	diskPrefix    = Rule{regexp.MustCompile(`^(HDD|SSD)`), "must start with HDD or SSD"}
	rules         [validationModeCount][fieldCount]Rule
	fieldsByKey   = make(map[string]Field, fieldCount)
	dataFields    []Field
	allFields     []Field
	schemaColumns []grid.Column
)

func init() {
	for mode := ValidationMode(0); mode < validationModeCount; mode++ {
		for f := Field(0); f < fieldCount; f++ {
			rules[mode][f] = buildRule(f, mode)
		}
	}

	dataFields = make([]Field, DataFieldCount)
	for f := Field(0); f < fieldCount; f++ {
		spec := specs[f]
		if spec.Field != f || spec.Key == "" {
			panic(fmt.Sprintf("field schema: missing spec for field %d", int(f)))
		}
		if _, dup := fieldsByKey[spec.Key]; dup {
			panic(fmt.Sprintf("field schema: duplicate key %q", spec.Key))
		}
		fieldsByKey[spec.Key] = f
		allFields = append(allFields, f)
		schemaColumns = append(schemaColumns, grid.Column{Key: spec.Key, Header: spec.Label})

		if f == FieldID {
			continue
		}
		if spec.Index < 0 || spec.Index >= DataFieldCount || dataFields[spec.Index] != 0 {
			panic(fmt.Sprintf("field schema: bad serialized index %d for %q", spec.Index, spec.Key))
		}
		dataFields[spec.Index] = f
	}
}

// buildRule picks the rule for one field in one mode. The switch must cover
// every field; the default branch panics during init.
func buildRule(f Field, mode ValidationMode) Rule {
	legacy := mode == ValidationLegacy
	switch f {
	case FieldID, FieldCPUCores:
		if legacy {
			return anyRule
		}
		return digitsRule
	case FieldIsTouchScreen, FieldOpticalDriveType:
		if legacy {
			return yesNoPrefix
		}
		return yesNoRule
	case FieldDiskType:
		if legacy {
			return diskPrefix
		}
		return diskRule
	case FieldScreenDiagonal:
		return diagonalRule
	case FieldManufacturer, FieldScreenResolution, FieldScreenSurfaceType, FieldCPUName,
		FieldCPUClockSpeed, FieldRAMSize, FieldDiskSize, FieldGPUName, FieldGPUMemory, FieldOSName:
		return textRule
	default:
		panic(fmt.Sprintf("field schema: no rule for field %d", int(f)))
	}
}

// FieldsInOrder returns the 15 data fields in serialized order.
func FieldsInOrder() []Field {
	return append([]Field(nil), dataFields...)
}

// AllFields returns every field, id first.
func AllFields() []Field {
	return append([]Field(nil), allFields...)
}

// SpecFor returns the schema entry of a field.
func SpecFor(f Field) FieldSpec {
	if f < 0 || f >= fieldCount {
		return FieldSpec{Field: f, Index: -1}
	}
	return specs[f]
}

// ParseField resolves an accessor key such as "diskType".
func ParseField(key string) (Field, bool) {
	f, ok := fieldsByKey[key]
	return f, ok
}

// RuleFor returns the validation rule of a field in the given mode.
func RuleFor(f Field, mode ValidationMode) Rule {
	return rules[mode][f]
}

// Columns returns the grid column descriptors, one per field, id first.
func Columns() []grid.Column {
	return append([]grid.Column(nil), schemaColumns...)
}

// String returns the accessor key.
func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "Field(" + strconv.Itoa(int(f)) + ")"
	}
	return specs[f].Key
}

// Value returns the textual value of field f.
func (r *Record) Value(f Field) string {
	switch f {
	case FieldID:
		return strconv.Itoa(r.ID)
	case FieldManufacturer:
		return r.Manufacturer
	case FieldScreenDiagonal:
		return r.ScreenDiagonal
	case FieldScreenResolution:
		return r.ScreenResolution
	case FieldScreenSurfaceType:
		return r.ScreenSurfaceType
	case FieldIsTouchScreen:
		return r.IsTouchScreen
	case FieldCPUName:
		return r.CPUName
	case FieldCPUCores:
		return r.CPUCores
	case FieldCPUClockSpeed:
		return r.CPUClockSpeed
	case FieldRAMSize:
		return r.RAMSize
	case FieldDiskSize:
		return r.DiskSize
	case FieldDiskType:
		return r.DiskType
	case FieldGPUName:
		return r.GPUName
	case FieldGPUMemory:
		return r.GPUMemory
	case FieldOSName:
		return r.OSName
	case FieldOpticalDriveType:
		return r.OpticalDriveType
	}
	return ""
}

// SetValue assigns the textual value of field f without validating it.
// The id field accepts only what strconv.Atoi accepts; empty means 0.
func (r *Record) SetValue(f Field, v string) error {
	switch f {
	case FieldID:
		if v == "" {
			r.ID = 0
			return nil
		}
		id, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("id %q is not an integer: %w", v, ErrValidationRejected)
		}
		r.ID = id
	case FieldManufacturer:
		r.Manufacturer = v
	case FieldScreenDiagonal:
		r.ScreenDiagonal = v
	case FieldScreenResolution:
		r.ScreenResolution = v
	case FieldScreenSurfaceType:
		r.ScreenSurfaceType = v
	case FieldIsTouchScreen:
		r.IsTouchScreen = v
	case FieldCPUName:
		r.CPUName = v
	case FieldCPUCores:
		r.CPUCores = v
	case FieldCPUClockSpeed:
		r.CPUClockSpeed = v
	case FieldRAMSize:
		r.RAMSize = v
	case FieldDiskSize:
		r.DiskSize = v
	case FieldDiskType:
		r.DiskType = v
	case FieldGPUName:
		r.GPUName = v
	case FieldGPUMemory:
		r.GPUMemory = v
	case FieldOSName:
		r.OSName = v
	case FieldOpticalDriveType:
		r.OpticalDriveType = v
	default:
		return fmt.Errorf("%w: %d", ErrUnknownField, int(f))
	}
	return nil
}

// Get implements grid.Accessor.
func (r Record) Get(key string) (string, bool) {
	f, ok := ParseField(key)
	if !ok {
		return "", false
	}
	return r.Value(f), true
}

// DataValues returns the 15 data fields in serialized order.
func (r *Record) DataValues() []string {
	out := make([]string, DataFieldCount)
	for i, f := range dataFields {
		out[i] = r.Value(f)
	}
	return out
}
