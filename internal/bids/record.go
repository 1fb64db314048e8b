package bids

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/bidscurator/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// InfoKey is the key of the BIDS record inside a file's info mapping.
const InfoKey = "BIDS"

// NotApplicable is the literal info.BIDS value marking a file excluded
// from BIDS curation.
const NotApplicable = "NA"

// State describes what a file's info mapping holds under InfoKey.
type State int

const (
	StateAbsent State = iota
	StateNotApplicable
	StatePresent
)

var ErrUnexpectedRecord = errors.New("unexpected BIDS value")

// Record is the BIDS metadata of one platform file.
type Record struct {
	Filename     string `mapstructure:"Filename" validate:"required,bidsext"`
	Folder       string `mapstructure:"Folder" validate:"required"`
	Path         string `mapstructure:"Path" validate:"required"`
	Acq          string `mapstructure:"Acq"`
	Ce           string `mapstructure:"Ce"`
	Dir          string `mapstructure:"Dir"`
	Echo         string `mapstructure:"Echo"`
	Mod          string `mapstructure:"Mod"`
	Modality     string `mapstructure:"Modality"`
	Rec          string `mapstructure:"Rec"`
	Run          string `mapstructure:"Run"`
	Task         string `mapstructure:"Task"`
	IntendedFor  Intent `mapstructure:"IntendedFor"`
	Ignore       bool   `mapstructure:"ignore"`
	Valid        bool   `mapstructure:"valid"`
	ErrorMessage string `mapstructure:"error_message"`
	Template     string `mapstructure:"template"`

	// Extra keeps keys this type does not model.
	Extra map[string]any `mapstructure:",remain"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("bidsext", func(fl validator.FieldLevel) bool {
		return HasBIDSExtension(fl.Field().String())
	})
	validate.RegisterStructValidation(recordStructLevel, Record{})
}

// path must end with the folder: sub-X/ses-Y/<Folder>
func recordStructLevel(sl validator.StructLevel) {
	r := sl.Current().Interface().(Record)
	if r.Path != "" && r.Folder != "" && path.Base(r.Path) != r.Folder {
		sl.ReportError(r.Path, "Path", "Path", "folder", r.Folder)
	}
}

// DecodeRecord decodes an info.BIDS mapping. Scalars are converted weakly
// (numbers to strings, "" to false) and unknown keys land in Extra.
func DecodeRecord(m map[string]any) (*Record, error) {
	var r Record
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       intentDecodeHook,
		WeaklyTypedInput: true,
		Result:           &r,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("decode BIDS record: %w", err)
	}
	return &r, nil
}

var intentType = reflect.TypeOf(Intent(nil))

func intentDecodeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != intentType {
		return data, nil
	}
	return ParseIntent(data)
}

// FromInfo reads the record stored in a file's info mapping.
func FromInfo(info map[string]any) (*Record, State, error) {
	v, ok := info[InfoKey]
	if !ok || v == nil {
		return nil, StateAbsent, nil
	}

	switch t := v.(type) {
	case string:
		if t == NotApplicable {
			return nil, StateNotApplicable, nil
		}
		return nil, StateAbsent, fmt.Errorf("%w: %q", ErrUnexpectedRecord, t)
	case map[string]any:
		r, err := DecodeRecord(t)
		if err != nil {
			return nil, StateAbsent, err
		}
		return r, StatePresent, nil
	default:
		return nil, StateAbsent, fmt.Errorf("%w: %T", ErrUnexpectedRecord, v)
	}
}

// ToMap encodes the record for a metadata update. Extra keys are written
// back unchanged.
func (r *Record) ToMap() map[string]any {
	m := make(map[string]any, 17+len(r.Extra))
	for k, v := range r.Extra {
		m[k] = v
	}

	m["Filename"] = r.Filename
	m["Folder"] = r.Folder
	m["Path"] = r.Path
	m["Acq"] = r.Acq
	m["Ce"] = r.Ce
	m["Dir"] = r.Dir
	m["Echo"] = r.Echo
	m["Mod"] = r.Mod
	m["Modality"] = r.Modality
	m["Rec"] = r.Rec
	m["Run"] = r.Run
	m["Task"] = r.Task
	m["IntendedFor"] = r.IntendedFor.Value()
	m["ignore"] = r.Ignore
	m["valid"] = r.Valid
	m["error_message"] = r.ErrorMessage
	m["template"] = r.Template

	return m
}

// Validate checks a record produced by the naming pass.
func (r *Record) Validate() error {
	if err := validate.Struct(r); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// IsImage reports whether the record names an image series rather than a
// bval/bvec sidecar.
func (r *Record) IsImage() bool {
	return strings.HasSuffix(r.Filename, ImageExtension)
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		return fmt.Errorf("%w: %s failed on '%s' (value: %v)",
			common.ErrorInvalidRecord, e.Field(), e.Tag(), e.Value())
	}
	return fmt.Errorf("%w: %v", common.ErrorInvalidRecord, err)
}
