package http

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/escrow-api/internal/validators"
	"github.com/MKhiriev/escrow-api/models"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}

// idFromPath reads the {id} path parameter. A value that is not a positive
// integer can never name a row, so it is reported as notFound.
func idFromPath(r *http.Request, notFound error) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, notFound
	}
	return id, nil
}

// pageFromQuery never fails: unparsable values fall back to the defaults.
func pageFromQuery(q url.Values) models.PageRequest {
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return models.PageRequest{Page: page, Limit: limit}.Normalize()
}

func jobFilterFromQuery(q url.Values) (models.JobFilter, error) {
	var errs validators.FieldErrors

	filter := models.JobFilter{
		PageRequest:  pageFromQuery(q),
		Search:       strings.TrimSpace(q.Get("search")),
		Category:     q.Get("category"),
		Location:     strings.TrimSpace(q.Get("location")),
		MinBudget:    floatFromQuery(&errs, q, "minBudget"),
		MaxBudget:    floatFromQuery(&errs, q, "maxBudget"),
		Status:       models.JobStatus(q.Get("status")),
		FeaturedOnly: q.Get("isFeatured") == "true",
		SortBy:       q.Get("sortBy"),
		SortOrder:    q.Get("sortOrder"),
	}

	return filter, errs.Err()
}

func freelancerFilterFromQuery(q url.Values) (models.FreelancerFilter, error) {
	var errs validators.FieldErrors

	filter := models.FreelancerFilter{
		PageRequest:   pageFromQuery(q),
		Search:        strings.TrimSpace(q.Get("search")),
		Skills:        splitList(q.Get("skills")),
		Location:      strings.TrimSpace(q.Get("location")),
		MinRating:     floatFromQuery(&errs, q, "minRating"),
		MaxHourlyRate: floatFromQuery(&errs, q, "maxHourlyRate"),
		VerifiedOnly:  q.Get("isVerified") == "true",
	}

	return filter, errs.Err()
}

func floatFromQuery(errs *validators.FieldErrors, q url.Values, key string) *float64 {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		errs.Add(key, key+" must be a number")
		return nil
	}
	return &v
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
