package core

import (
	"time"

	"github.com/JonMunkholm/laptops/internal/grid"
)

// Field identifies one attribute of a laptop record.
// The set is closed; iota order is the display order with id first.
type Field int

const (
	FieldID Field = iota
	FieldManufacturer
	FieldScreenDiagonal
	FieldScreenResolution
	FieldScreenSurfaceType
	FieldIsTouchScreen
	FieldCPUName
	FieldCPUCores
	FieldCPUClockSpeed
	FieldRAMSize
	FieldDiskSize
	FieldDiskType
	FieldGPUName
	FieldGPUMemory
	FieldOSName
	FieldOpticalDriveType

	fieldCount
)

// DataFieldCount is the number of serialized data fields (everything except id).
const DataFieldCount = int(fieldCount) - 1

// FieldKind groups fields by the shape of their validation rule.
type FieldKind int

const (
	KindText FieldKind = iota
	KindNumeric
	KindEnum
)

// FieldSpec describes a single record field.
type FieldSpec struct {
	Field Field     // Enumeration member
	Key   string    // Accessor / wire name: "screenDiagonal"
	Label string    // Grid header: "Przekątna ekranu"
	Index int       // Position in the delimited text format, -1 for id
	Kind  FieldKind // Rule family
}

// Record is one laptop specification sheet.
// ID is a display identifier only; it is not guaranteed unique.
type Record struct {
	ID                int    `json:"id"`
	Manufacturer      string `json:"manufacturer"`
	ScreenDiagonal    string `json:"screenDiagonal"`
	ScreenResolution  string `json:"screenResolution"`
	ScreenSurfaceType string `json:"screenSurfaceType"`
	IsTouchScreen     string `json:"isTouchScreen"`
	CPUName           string `json:"cpuName"`
	CPUCores          string `json:"cpuCores"`
	CPUClockSpeed     string `json:"cpuClockSpeed"`
	RAMSize           string `json:"ramSize"`
	DiskSize          string `json:"diskSize"`
	DiskType          string `json:"diskType"`
	GPUName           string `json:"gpuName"`
	GPUMemory         string `json:"gpuMemory"`
	OSName            string `json:"osName"`
	OpticalDriveType  string `json:"opticalDriveType"`
}

// Enumerated values shared by the codecs and the validator.
const (
	Yes = "Tak"
	No  = "Nie"
	HDD = "HDD"
	SSD = "SSD"
)

// Change describes the effect of a store mutation on the rendering layer.
type Change struct {
	Generation string           // Load generation the collection belongs to
	Mode       grid.RefreshMode // How the pager must react
	Rows       int              // Row count after the change
}

// LoadResult contains the final result of a load operation.
type LoadResult struct {
	LoadID        string        `json:"loadId"`
	Format        string        `json:"format"`
	FileName      string        `json:"fileName"`
	Rows          int           `json:"rows"`
	InvalidRows   int           `json:"invalidRows"`   // rows with at least one field failing its rule
	ReplacedBytes int           `json:"replacedBytes"` // invalid UTF-8 bytes read as '?'
	Generation    string        `json:"generation"`
	Duration      time.Duration `json:"duration"`
}

// UpdateResult contains the result of a single accepted cell edit.
type UpdateResult struct {
	Row      int    `json:"row"`
	Field    string `json:"field"`
	OldValue string `json:"oldValue"`
	NewValue string `json:"newValue"`
}

// PageRow is a record together with its absolute position in the collection.
type PageRow struct {
	Row    int    `json:"row"`
	Record Record `json:"record"`
}

// PageView is the slice of the collection currently shown by the pager.
type PageView struct {
	Rows  []PageRow      `json:"rows"`
	State grid.PageState `json:"state"`
}
