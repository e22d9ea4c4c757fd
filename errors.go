package upsetgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/upsetgo/annotate"
	"github.com/hupe1980/upsetgo/frame"
	"github.com/hupe1980/upsetgo/highlight"
	"github.com/hupe1980/upsetgo/intersect"
)

var (
	// ErrConfiguration is the class of errors caused by an invalid chart
	// configuration: empty or unknown set lists, mismatched abbreviation
	// lists, out-of-range geometry.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrValidation is the class of errors caused by data that cannot
	// support the requested chart: missing or insufficient annotation
	// attributes, invalid highlight list contents.
	ErrValidation = errors.New("validation failed")

	// ErrRange is returned for a negative highlight index.
	ErrRange = errors.New("index out of range")

	// ErrValue is the class of errors caused by an unsupported token:
	// unknown plot types, axis orientations or highlight strings.
	ErrValue = errors.New("invalid value")

	// ErrType is returned for a highlight directive of an unsupported type.
	ErrType = errors.New("unsupported type")
)

// ErrAxisOrient indicates a vertical-bar y-axis orientation outside the
// supported set.
type ErrAxisOrient struct {
	Token string
}

func (e *ErrAxisOrient) Error() string {
	return fmt.Sprintf("y-axis orient must be %q or %q, got %q", OrientLeft, OrientRight, e.Token)
}

// ErrHeightRatio indicates a height ratio outside (0, 1].
type ErrHeightRatio struct {
	Ratio float64
}

func (e *ErrHeightRatio) Error() string {
	return fmt.Sprintf("height ratio must be in (0, 1], got %v", e.Ratio)
}

// translateError attaches the matching error class to subpackage errors so
// callers can dispatch with errors.Is against the sentinels above. The
// original error stays reachable via errors.As/Unwrap.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Configuration surface.
	if errors.Is(err, intersect.ErrEmptySets) {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	var unknownSet *intersect.ErrUnknownSet
	if errors.As(err, &unknownSet) {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	var abbrevLen *intersect.ErrAbbrevLength
	if errors.As(err, &abbrevLen) {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	var notBool *frame.ErrNotBoolean
	if errors.As(err, &notBool) {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	var heightRatio *ErrHeightRatio
	if errors.As(err, &heightRatio) {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	// Annotation data and spec shape.
	var missingAttrs *annotate.ErrMissingAttributes
	if errors.As(err, &missingAttrs) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	var insufficient *annotate.ErrInsufficientValues
	if errors.As(err, &insufficient) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	var emptyAttr *annotate.ErrEmptyAttribute
	if errors.As(err, &emptyAttr) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	var badPlot *annotate.ErrUnsupportedPlotType
	if errors.As(err, &badPlot) {
		return fmt.Errorf("%w: %w", ErrValue, err)
	}

	// Highlight directives.
	var negIndex *highlight.ErrNegativeIndex
	if errors.As(err, &negIndex) {
		return fmt.Errorf("%w: %w", ErrRange, err)
	}
	var negInList *highlight.ErrNegativeInList
	if errors.As(err, &negInList) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	var badToken *highlight.ErrBadToken
	if errors.As(err, &badToken) {
		return fmt.Errorf("%w: %w", ErrValue, err)
	}
	var badType *highlight.ErrUnsupportedType
	if errors.As(err, &badType) {
		return fmt.Errorf("%w: %w", ErrType, err)
	}

	// Axis tokens.
	var orient *ErrAxisOrient
	if errors.As(err, &orient) {
		return fmt.Errorf("%w: %w", ErrValue, err)
	}

	return err
}
