// Package state saves and restores module state documents.
package state

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/grough/lilac-modules-vcv/pkg/framework/param"
)

// CurrentVersion is the document version written by Save
const CurrentVersion uint32 = 1

var binaryMagic = []byte("LILACM")

// ErrModelMismatch is returned when a document was saved by a different model
var ErrModelMismatch = errors.New("state belongs to a different model")

// ErrSectionTooLarge is returned when a binary document declares a section
// longer than the loader accepts
var ErrSectionTooLarge = errors.New("state section too large")

// Decoder decodes the module data section into v.
// When the document has no data section it leaves v untouched.
type Decoder func(v any) error

// DataPersister is implemented by modules that keep state beyond their parameters
type DataPersister interface {
	// SaveData returns the value stored in the document's data section
	SaveData() any
	// LoadData restores from the data section. Fields missing from the
	// document must come back as the module's zero state.
	LoadData(decode Decoder) error
}

// ParamValue is one saved parameter, in plain units
type ParamValue struct {
	ID    uint32  `json:"id" yaml:"id"`
	Value float64 `json:"value" yaml:"value"`
}

type jsonDocument struct {
	Version uint32          `json:"version"`
	Model   string          `json:"model,omitempty"`
	Params  []ParamValue    `json:"params,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type yamlDocument struct {
	Version uint32       `yaml:"version"`
	Model   string       `yaml:"model,omitempty"`
	Params  []ParamValue `yaml:"params,omitempty"`
	Data    yaml.Node    `yaml:"data,omitempty"`
}

// Manager handles module state saving and loading
type Manager struct {
	version  uint32
	model    string
	registry *param.Registry
	data     DataPersister
}

// NewManager creates a new state manager for one module instance
func NewManager(model string, registry *param.Registry) *Manager {
	return &Manager{
		version:  CurrentVersion,
		model:    model,
		registry: registry,
	}
}

// SetDataPersister sets the hook that contributes the data section
func (m *Manager) SetDataPersister(p DataPersister) {
	m.data = p
}

// Save writes the module state in the given format
func (m *Manager) Save(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return m.saveJSON(w)
	case FormatYAML:
		return m.saveYAML(w)
	case FormatBinary:
		return m.saveBinary(w)
	default:
		return fmt.Errorf("unsupported state format %d", format)
	}
}

// Load reads module state in the given format.
// Unknown parameters are ignored and missing ones keep their current value.
func (m *Manager) Load(r io.Reader, format Format) error {
	switch format {
	case FormatJSON:
		return m.loadJSON(r)
	case FormatYAML:
		return m.loadYAML(r)
	case FormatBinary:
		return m.loadBinary(r)
	default:
		return fmt.Errorf("unsupported state format %d", format)
	}
}

func (m *Manager) params() []ParamValue {
	if m.registry == nil {
		return nil
	}
	all := m.registry.All()
	values := make([]ParamValue, 0, len(all))
	for _, p := range all {
		values = append(values, ParamValue{ID: p.ID, Value: p.GetPlainValue()})
	}
	return values
}

func (m *Manager) check(version uint32, model string) error {
	if version > m.version {
		return fmt.Errorf("state version %d is newer than supported version %d", version, m.version)
	}
	if model != "" && m.model != "" && model != m.model {
		return fmt.Errorf("%w: got %q, want %q", ErrModelMismatch, model, m.model)
	}
	return nil
}

func (m *Manager) applyParams(values []ParamValue) {
	if m.registry == nil {
		return
	}
	for _, v := range values {
		if p := m.registry.Get(v.ID); p != nil {
			p.SetPlainValue(v.Value)
		}
	}
}

// restore applies params then the data section. Params are rolled back
// when the data section fails to load.
func (m *Manager) restore(values []ParamValue, decode Decoder) error {
	previous := m.params()
	m.applyParams(values)

	if m.data == nil {
		return nil
	}
	if err := m.data.LoadData(decode); err != nil {
		m.applyParams(previous)
		return fmt.Errorf("loading %s data: %w", m.model, err)
	}
	return nil
}

func (m *Manager) saveJSON(w io.Writer) error {
	doc := jsonDocument{Version: m.version, Model: m.model, Params: m.params()}
	if m.data != nil {
		raw, err := json.Marshal(m.data.SaveData())
		if err != nil {
			return fmt.Errorf("encoding %s data: %w", m.model, err)
		}
		doc.Data = raw
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func (m *Manager) loadJSON(r io.Reader) error {
	var doc jsonDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("decoding state: %w", err)
	}
	if err := m.check(doc.Version, doc.Model); err != nil {
		return err
	}
	return m.restore(doc.Params, func(v any) error {
		if len(doc.Data) == 0 || string(doc.Data) == "null" {
			return nil
		}
		return json.Unmarshal(doc.Data, v)
	})
}

func (m *Manager) saveYAML(w io.Writer) error {
	doc := yamlDocument{Version: m.version, Model: m.model, Params: m.params()}
	if m.data != nil {
		if err := doc.Data.Encode(m.data.SaveData()); err != nil {
			return fmt.Errorf("encoding %s data: %w", m.model, err)
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func (m *Manager) loadYAML(r io.Reader) error {
	var doc yamlDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("decoding state: %w", err)
	}
	if err := m.check(doc.Version, doc.Model); err != nil {
		return err
	}
	return m.restore(doc.Params, func(v any) error {
		if doc.Data.Kind == 0 {
			return nil
		}
		return doc.Data.Decode(v)
	})
}

func (m *Manager) saveBinary(w io.Writer) error {
	if _, err := w.Write(binaryMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, m.version); err != nil {
		return err
	}
	if err := writeString(w, m.model); err != nil {
		return err
	}

	values := m.params()
	if err := binary.Write(w, binary.LittleEndian, int32(len(values))); err != nil {
		return err
	}
	for _, v := range values {
		if err := binary.Write(w, binary.LittleEndian, v.ID); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, v.Value); err != nil {
			return err
		}
	}

	// The data section is carried as a length-prefixed JSON blob
	if m.data == nil {
		return binary.Write(w, binary.LittleEndian, uint32(0))
	}
	raw, err := json.Marshal(m.data.SaveData())
	if err != nil {
		return fmt.Errorf("encoding %s data: %w", m.model, err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(raw))); err != nil {
		return err
	}
	_, err = w.Write(raw)
	return err
}

func (m *Manager) loadBinary(r io.Reader) error {
	header := make([]byte, len(binaryMagic))
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	if string(header) != string(binaryMagic) {
		return fmt.Errorf("invalid state format")
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return err
	}
	model, err := readString(r)
	if err != nil {
		return err
	}
	if err := m.check(version, model); err != nil {
		return err
	}

	var paramCount int32
	if err := binary.Read(r, binary.LittleEndian, &paramCount); err != nil {
		return err
	}
	if paramCount < 0 {
		return fmt.Errorf("invalid parameter count %d", paramCount)
	}
	if paramCount > maxParams {
		return fmt.Errorf("%w: %d parameters exceeds %d", ErrSectionTooLarge, paramCount, maxParams)
	}
	values := make([]ParamValue, 0, paramCount)
	for i := int32(0); i < paramCount; i++ {
		var v ParamValue
		if err := binary.Read(r, binary.LittleEndian, &v.ID); err != nil {
			return err
		}
		if err := binary.Read(r, binary.LittleEndian, &v.Value); err != nil {
			return err
		}
		values = append(values, v)
	}

	var dataLen uint32
	if err := binary.Read(r, binary.LittleEndian, &dataLen); err != nil {
		return err
	}
	if dataLen > maxDataLen {
		return fmt.Errorf("%w: data section of %d bytes exceeds %d", ErrSectionTooLarge, dataLen, maxDataLen)
	}
	raw := make([]byte, dataLen)
	if _, err := io.ReadFull(r, raw); err != nil {
		return fmt.Errorf("reading data section: %w", err)
	}

	return m.restore(values, func(v any) error {
		if len(raw) == 0 {
			return nil
		}
		return json.Unmarshal(raw, v)
	})
}

// Limits on binary document sections
const (
	maxStringLen = 1 << 12
	maxParams    = 1 << 12
	maxDataLen   = 1 << 20
)

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	if n > maxStringLen {
		return "", fmt.Errorf("string length %d exceeds %d", n, maxStringLen)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
