package httpx

import (
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/taskul/jobly/internal/domain/model"
	apperrors "github.com/taskul/jobly/internal/errors"
)

// parseJobFilter reads title, minSalary and hasEquity from the query string.
// hasEquity is true only for the literal "true".
func parseJobFilter(q url.Values) (model.JobFilter, error) {
	var f model.JobFilter
	if err := rejectUnknownParams(q, "title", "minSalary", "hasEquity"); err != nil {
		return f, err
	}
	f.Title = optionalString(q, "title")
	minSalary, err := optionalInt(q, "minSalary")
	if err != nil {
		return f, err
	}
	f.MinSalary = minSalary
	if q.Has("hasEquity") {
		f.HasEquity = model.Some(q.Get("hasEquity") == "true")
	}
	return f, nil
}

// parseCompanyFilter reads nameLike, minEmployees and maxEmployees from the query string.
func parseCompanyFilter(q url.Values) (model.CompanyFilter, error) {
	var f model.CompanyFilter
	if err := rejectUnknownParams(q, "nameLike", "minEmployees", "maxEmployees"); err != nil {
		return f, err
	}
	f.NameLike = optionalString(q, "nameLike")
	var err error
	if f.MinEmployees, err = optionalInt(q, "minEmployees"); err != nil {
		return f, err
	}
	if f.MaxEmployees, err = optionalInt(q, "maxEmployees"); err != nil {
		return f, err
	}
	return f, nil
}

func rejectUnknownParams(q url.Values, allowed ...string) error {
	var unknown []string
	for key := range q {
		known := false
		for _, a := range allowed {
			if key == a {
				known = true
				break
			}
		}
		if !known {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return apperrors.ValidationField(unknown[0], "unknown query parameter: "+unknown[0])
}

func optionalString(q url.Values, key string) model.Optional[string] {
	if !q.Has(key) {
		return model.Optional[string]{}
	}
	return model.Some(q.Get(key))
}

func optionalInt(q url.Values, key string) (model.Optional[int], error) {
	if !q.Has(key) {
		return model.Optional[int]{}, nil
	}
	n, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return model.Optional[int]{}, apperrors.ValidationField(key, key+" must be an integer")
	}
	return model.Some(n), nil
}

// pathInt parses an integer path segment.
func pathInt(r *http.Request, name string) (int, error) {
	n, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, apperrors.ValidationField(name, name+" must be an integer")
	}
	return n, nil
}
