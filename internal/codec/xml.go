package codec

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/laptops/internal/core"
)

const (
	touchYes = "yes"
	touchNo  = "no"

	modDateLayout = "2006-01-02 15:04"
)

// XMLOptions tune the XML catalog format.
type XMLOptions struct {
	// Indent is the per-level indentation of written documents; empty writes
	// a single line.
	Indent string

	// Now stamps the moddate attribute. Defaults to time.Now.
	Now func() time.Time

	// Validation decides which touch values are written as touch="yes":
	// exactly Tak when strict, anything starting with Tak when legacy. The
	// attribute is binary, so any other value reloads as Nie.
	Validation core.ValidationMode
}

// DefaultXMLOptions returns the options used when nothing is configured.
func DefaultXMLOptions() XMLOptions {
	return XMLOptions{Indent: "  "}
}

// XML is the nested catalog format:
//
//	<laptops moddate="...">
//	  <laptop id="1">
//	    <manufacturer/>
//	    <screen touch="yes|no"><size/><resolution/><type/></screen>
//	    <processor><name/><physical_cores/><clock_speed/></processor>
//	    <ram/>
//	    <disc type="HDD|SSD"><storage/></disc>
//	    <graphic_card><name/><memory/></graphic_card>
//	    <os/>
//	    <disc_reader/>
//	  </laptop>
//	</laptops>
type XML struct {
	Options XMLOptions
}

// NewXML creates an XML codec.
func NewXML(opts XMLOptions) *XML {
	return &XML{Options: opts}
}

func (x *XML) Format() string      { return "xml" }
func (x *XML) Extension() string   { return ".xml" }
func (x *XML) ContentType() string { return "application/xml" }

type xmlCatalog struct {
	XMLName xml.Name    `xml:"laptops"`
	ModDate string      `xml:"moddate,attr,omitempty"`
	Laptops []xmlLaptop `xml:"laptop"`
}

type xmlLaptop struct {
	ID           string        `xml:"id,attr"`
	Manufacturer string        `xml:"manufacturer"`
	Screen       *xmlScreen    `xml:"screen"`
	Processor    *xmlProcessor `xml:"processor"`
	RAM          string        `xml:"ram"`
	Disc         *xmlDisc      `xml:"disc"`
	GraphicCard  *xmlGraphic   `xml:"graphic_card"`
	OS           string        `xml:"os"`
	DiscReader   string        `xml:"disc_reader"`
}

type xmlScreen struct {
	Touch      string `xml:"touch,attr,omitempty"`
	Size       string `xml:"size"`
	Resolution string `xml:"resolution"`
	Type       string `xml:"type"`
}

type xmlProcessor struct {
	Name          string `xml:"name"`
	PhysicalCores string `xml:"physical_cores"`
	ClockSpeed    string `xml:"clock_speed"`
}

type xmlDisc struct {
	Type    string `xml:"type,attr,omitempty"`
	Storage string `xml:"storage"`
}

type xmlGraphic struct {
	Name   string `xml:"name"`
	Memory string `xml:"memory"`
}

// Parse decodes a whole document. A missing container element or a
// non-integer id aborts the parse; absent leaf elements decode as empty and
// an absent disc type is allowed.
func (x *XML) Parse(r io.Reader) ([]core.Record, error) {
	var doc xmlCatalog
	dec := xml.NewDecoder(core.NewSourceReader(r))
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", core.ErrParseMalformed)
		}
		return nil, fmt.Errorf("%w: %v", core.ErrParseMalformed, err)
	}

	records := make([]core.Record, 0, len(doc.Laptops))
	for i, l := range doc.Laptops {
		rec, err := l.record()
		if err != nil {
			return nil, fmt.Errorf("%w: laptop %d: %v", core.ErrParseMalformed, i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (l *xmlLaptop) record() (core.Record, error) {
	idText := strings.TrimSpace(l.ID)
	if idText == "" {
		return core.Record{}, errors.New("missing id attribute")
	}
	id, err := strconv.Atoi(idText)
	if err != nil {
		return core.Record{}, fmt.Errorf("id %q is not an integer", idText)
	}

	switch {
	case l.Screen == nil:
		return core.Record{}, fmt.Errorf("id %d: missing <screen>", id)
	case l.Processor == nil:
		return core.Record{}, fmt.Errorf("id %d: missing <processor>", id)
	case l.Disc == nil:
		return core.Record{}, fmt.Errorf("id %d: missing <disc>", id)
	case l.GraphicCard == nil:
		return core.Record{}, fmt.Errorf("id %d: missing <graphic_card>", id)
	}

	touch := core.No
	if strings.TrimSpace(l.Screen.Touch) == touchYes {
		touch = core.Yes
	}

	return core.Record{
		ID:                id,
		Manufacturer:      strings.TrimSpace(l.Manufacturer),
		ScreenDiagonal:    strings.TrimSpace(l.Screen.Size),
		ScreenResolution:  strings.TrimSpace(l.Screen.Resolution),
		ScreenSurfaceType: strings.TrimSpace(l.Screen.Type),
		IsTouchScreen:     touch,
		CPUName:           strings.TrimSpace(l.Processor.Name),
		CPUCores:          strings.TrimSpace(l.Processor.PhysicalCores),
		CPUClockSpeed:     strings.TrimSpace(l.Processor.ClockSpeed),
		RAMSize:           strings.TrimSpace(l.RAM),
		DiskSize:          strings.TrimSpace(l.Disc.Storage),
		DiskType:          strings.TrimSpace(l.Disc.Type),
		GPUName:           strings.TrimSpace(l.GraphicCard.Name),
		GPUMemory:         strings.TrimSpace(l.GraphicCard.Memory),
		OSName:            strings.TrimSpace(l.OS),
		OpticalDriveType:  strings.TrimSpace(l.DiscReader),
	}, nil
}

// Serialize writes the records as a complete document with an XML
// declaration. Output parses back to the same records.
func (x *XML) Serialize(w io.Writer, records []core.Record) error {
	now := time.Now
	if x.Options.Now != nil {
		now = x.Options.Now
	}

	doc := xmlCatalog{
		ModDate: now().Format(modDateLayout),
		Laptops: make([]xmlLaptop, len(records)),
	}
	for i := range records {
		doc.Laptops[i] = x.laptopFromRecord(&records[i])
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	if x.Options.Indent != "" {
		enc.Indent("", x.Options.Indent)
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode xml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (x *XML) touchAttr(v string) string {
	yes := v == core.Yes
	if x.Options.Validation == core.ValidationLegacy {
		yes = strings.HasPrefix(v, core.Yes)
	}
	if yes {
		return touchYes
	}
	return touchNo
}

func (x *XML) laptopFromRecord(r *core.Record) xmlLaptop {
	touch := x.touchAttr(r.IsTouchScreen)
	return xmlLaptop{
		ID:           strconv.Itoa(r.ID),
		Manufacturer: r.Manufacturer,
		Screen: &xmlScreen{
			Touch:      touch,
			Size:       r.ScreenDiagonal,
			Resolution: r.ScreenResolution,
			Type:       r.ScreenSurfaceType,
		},
		Processor: &xmlProcessor{
			Name:          r.CPUName,
			PhysicalCores: r.CPUCores,
			ClockSpeed:    r.CPUClockSpeed,
		},
		RAM: r.RAMSize,
		Disc: &xmlDisc{
			Type:    r.DiskType,
			Storage: r.DiskSize,
		},
		GraphicCard: &xmlGraphic{
			Name:   r.GPUName,
			Memory: r.GPUMemory,
		},
		OS:         r.OSName,
		DiscReader: r.OpticalDriveType,
	}
}
