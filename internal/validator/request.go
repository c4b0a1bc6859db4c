package validator

import (
	"strconv"
	"strings"

	"github.com/beyondgbrowse/snowgate/internal/domain"
	apperrors "github.com/beyondgbrowse/snowgate/internal/pkg/errors"
)

// Request validators are pure functions of their inputs. They return the
// validated arguments or an InvalidArgument error.

// SplitPosition splits "<start>..<end>" into its two parts. Anything other
// than exactly two parts is rejected; emptiness is checked by the callers.
func SplitPosition(position string) (string, string, error) {
	parts := strings.Split(position, domain.PositionSeparator)
	if len(parts) != 2 {
		return "", "", apperrors.InvalidArgument("position must have the form <start>..<end>").
			WithDetail("position", position)
	}
	return parts[0], parts[1], nil
}

// parseBounds converts already split, non-empty bounds to integers
func parseBounds(start, end string) (int64, int64, error) {
	s, err := strconv.ParseInt(start, 10, 64)
	if err != nil {
		return 0, 0, apperrors.InvalidArgument("position start is not an integer").WithDetail("start", start)
	}
	e, err := strconv.ParseInt(end, 10, 64)
	if err != nil {
		return 0, 0, apperrors.InvalidArgument("position end is not an integer").WithDetail("end", end)
	}
	return s, e, nil
}

// RegionByProtein validates the arguments of the /ref route
func RegionByProtein(datasetID uint16, proteinName, position string) (*domain.RegionQuery, error) {
	start, end, err := SplitPosition(position)
	if err != nil {
		return nil, err
	}
	if start == "" || end == "" {
		return nil, apperrors.InvalidArgument("position bounds are required").WithDetail("position", position)
	}
	s, e, err := parseBounds(start, end)
	if err != nil {
		return nil, err
	}
	return &domain.RegionQuery{
		DatasetID: datasetID,
		Region: domain.SequenceRegion{
			ReferenceName: proteinName,
			Start:         s,
			End:           e,
		},
	}, nil
}

// ProteinLookup validates the arguments of the locate and autocomplete routes
func ProteinLookup(datasetID uint16, proteinName string) (*domain.ProteinQuery, error) {
	q := &domain.ProteinQuery{DatasetID: datasetID, ProteinName: proteinName}
	if err := Validate(q); err != nil {
		return nil, invalid(err)
	}
	return q, nil
}

// AnnotationRegion validates the arguments of the annotation query route
func AnnotationRegion(datasetID uint16, name, position string) (*domain.RegionQuery, error) {
	start, end, err := SplitPosition(position)
	if err != nil {
		return nil, err
	}
	if name == "" || start == "" || end == "" {
		return nil, apperrors.InvalidArgument("name, start and end are required").
			WithDetail("name", name).
			WithDetail("position", position)
	}
	s, e, err := parseBounds(start, end)
	if err != nil {
		return nil, err
	}
	return &domain.RegionQuery{
		DatasetID: datasetID,
		Region: domain.SequenceRegion{
			ReferenceName: name,
			Start:         s,
			End:           e,
		},
	}, nil
}

// AnnotationInsert validates an annotation before it is stored
func AnnotationInsert(a *domain.Annotation) error {
	if err := Validate(a); err != nil {
		return invalid(err)
	}
	return nil
}

// AnnotationSearch validates a search filter: the dataset id must lie in
// (0, 5000) and at least one filter field must be set.
func AnnotationSearch(f *domain.SearchFilter) error {
	if err := Validate(f); err != nil {
		return invalid(err)
	}
	return nil
}

// LenientUint16 parses s as an unsigned 16-bit integer, yielding 0 for
// anything unparseable or out of range.
func LenientUint16(s string) uint16 {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil {
		return 0
	}
	return uint16(v)
}

// LenientInt32 parses s as a signed 32-bit integer, yielding 0 for
// anything unparseable or out of range.
func LenientInt32(s string) int32 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0
	}
	return int32(v)
}

func invalid(err error) error {
	appErr := apperrors.InvalidArgument(err.Error()).WithError(err)
	if verrs, ok := err.(ValidationErrors); ok {
		for _, v := range verrs {
			appErr.WithDetail(v.Field, v.Message)
		}
	}
	return appErr
}
