package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/escrow-api/internal/config"
	"github.com/MKhiriev/escrow-api/internal/logger"
	"github.com/MKhiriev/escrow-api/internal/utils"
	"github.com/MKhiriev/escrow-api/models"
)

type httpAPIAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAPIAdapter constructs the REST implementation of [APIAdapter].
// adapterCfg.HTTPAddress may omit the scheme, "http" is assumed then.
func NewHTTPAPIAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (APIAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpAPIAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAPIAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpAPIAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpAPIAdapter) Health(ctx context.Context) (models.HealthResponse, error) {
	var health models.HealthResponse
	err := h.do(h.request(ctx).SetResult(&health), resty.MethodGet, "/api/health", "health")
	return health, err
}

func (h *httpAPIAdapter) Signup(ctx context.Context, req models.SignupRequest) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/auth/signup", req, "signup")
}

func (h *httpAPIAdapter) Signin(ctx context.Context, req models.SigninRequest) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/auth/signin", req, "signin")
}

func (h *httpAPIAdapter) authenticate(ctx context.Context, path string, body any, op string) (models.AuthResponse, error) {
	var auth models.AuthResponse
	if err := h.do(h.request(ctx).SetBody(body).SetResult(&auth), resty.MethodPost, path, op); err != nil {
		return models.AuthResponse{}, err
	}
	if auth.Token == "" {
		return models.AuthResponse{}, fmt.Errorf("%s: response carries no token", op)
	}

	h.SetToken(auth.Token)
	h.logger.Debug().Int64("user_id", auth.User.ID).Str("op", op).Msg("token stored")
	return auth, nil
}

func (h *httpAPIAdapter) Logout(ctx context.Context) error {
	if err := h.do(h.authedRequest(ctx), resty.MethodPost, "/api/auth/logout", "logout"); err != nil {
		return err
	}
	h.SetToken("")
	return nil
}

func (h *httpAPIAdapter) Profile(ctx context.Context) (models.UserProfile, error) {
	var resp struct {
		User models.UserProfile `json:"user"`
	}
	err := h.do(h.authedRequest(ctx).SetResult(&resp), resty.MethodGet, "/api/user/profile", "profile")
	return resp.User, err
}

func (h *httpAPIAdapter) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.User, error) {
	var resp models.UpdateProfileResponse
	err := h.do(h.authedRequest(ctx).SetBody(req).SetResult(&resp), resty.MethodPut, "/api/user/profile", "update profile")
	return resp.User, err
}

func (h *httpAPIAdapter) MyJobs(ctx context.Context, status models.JobStatus) ([]models.Job, error) {
	var resp models.JobsResponse
	r := h.authedRequest(ctx).SetResult(&resp)
	if status != "" {
		r.SetQueryParam("status", string(status))
	}
	err := h.do(r, resty.MethodGet, "/api/user/jobs", "my jobs")
	return resp.Jobs, err
}

func (h *httpAPIAdapter) ListFreelancers(ctx context.Context, filter models.FreelancerFilter) (models.FreelancersPage, error) {
	var page models.FreelancersPage
	r := h.request(ctx).SetQueryParams(freelancerFilterParams(filter)).SetResult(&page)
	err := h.do(r, resty.MethodGet, "/api/users/freelancers", "list freelancers")
	return page, err
}

func (h *httpAPIAdapter) GetFreelancer(ctx context.Context, id int64) (models.Freelancer, error) {
	var resp models.FreelancerResponse
	err := h.do(h.request(ctx).SetResult(&resp), resty.MethodGet, "/api/users/freelancers/"+formatID(id), "get freelancer")
	return resp.Freelancer, err
}

func (h *httpAPIAdapter) ListJobs(ctx context.Context, filter models.JobFilter) (models.JobsPage, error) {
	var page models.JobsPage
	r := h.request(ctx).SetQueryParams(jobFilterParams(filter)).SetResult(&page)
	err := h.do(r, resty.MethodGet, "/api/jobs", "list jobs")
	return page, err
}

func (h *httpAPIAdapter) Categories(ctx context.Context) ([]models.CategoryCount, error) {
	var resp models.CategoriesResponse
	err := h.do(h.request(ctx).SetResult(&resp), resty.MethodGet, "/api/jobs/categories", "categories")
	return resp.Categories, err
}

func (h *httpAPIAdapter) GetJob(ctx context.Context, id int64) (models.Job, error) {
	var resp models.JobResponse
	err := h.do(h.request(ctx).SetResult(&resp), resty.MethodGet, "/api/jobs/"+formatID(id), "get job")
	return resp.Job, err
}

func (h *httpAPIAdapter) CreateJob(ctx context.Context, req models.CreateJobRequest) (models.Job, error) {
	var resp models.JobResponse
	err := h.do(h.authedRequest(ctx).SetBody(req).SetResult(&resp), resty.MethodPost, "/api/jobs", "create job")
	return resp.Job, err
}

func (h *httpAPIAdapter) UpdateJob(ctx context.Context, id int64, req models.UpdateJobRequest) (models.Job, error) {
	var resp models.JobResponse
	err := h.do(h.authedRequest(ctx).SetBody(req).SetResult(&resp), resty.MethodPut, "/api/jobs/"+formatID(id), "update job")
	return resp.Job, err
}

func (h *httpAPIAdapter) DeleteJob(ctx context.Context, id int64) error {
	return h.do(h.authedRequest(ctx), resty.MethodDelete, "/api/jobs/"+formatID(id), "delete job")
}

func (h *httpAPIAdapter) Apply(ctx context.Context, jobID int64, req models.CreateProposalRequest) (models.Proposal, error) {
	var resp models.ProposalResponse
	path := "/api/jobs/" + formatID(jobID) + "/proposals"
	err := h.do(h.authedRequest(ctx).SetBody(req).SetResult(&resp), resty.MethodPost, path, "apply")
	return resp.Proposal, err
}

func (h *httpAPIAdapter) ListProposals(ctx context.Context, jobID int64) ([]models.Proposal, error) {
	var resp models.ProposalsResponse
	path := "/api/jobs/" + formatID(jobID) + "/proposals"
	err := h.do(h.authedRequest(ctx).SetResult(&resp), resty.MethodGet, path, "list proposals")
	return resp.Proposals, err
}

func (h *httpAPIAdapter) Chat(ctx context.Context, message string) (string, error) {
	var resp models.ChatResponse
	r := h.request(ctx).SetBody(models.ChatRequest{Message: message}).SetResult(&resp)
	err := h.do(r, resty.MethodPost, "/api/support/chat", "chat")
	return resp.Reply, err
}

func (h *httpAPIAdapter) request(ctx context.Context) *resty.Request {
	return h.client.R().SetContext(ctx)
}

func (h *httpAPIAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.request(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// do sends r and maps transport failures and non-2xx answers to errors.
func (h *httpAPIAdapter) do(r *resty.Request, method, path, op string) error {
	resp, err := r.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s request: %w", op, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Err(err).Str("op", op).Int("status", resp.StatusCode()).Send()
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func jobFilterParams(f models.JobFilter) map[string]string {
	params := pageParams(f.PageRequest)
	setIfNotEmpty(params, "search", f.Search)
	setIfNotEmpty(params, "category", f.Category)
	setIfNotEmpty(params, "location", f.Location)
	setIfNotEmpty(params, "status", string(f.Status))
	setIfNotEmpty(params, "sortBy", f.SortBy)
	setIfNotEmpty(params, "sortOrder", f.SortOrder)
	setFloat(params, "minBudget", f.MinBudget)
	setFloat(params, "maxBudget", f.MaxBudget)
	if f.FeaturedOnly {
		params["isFeatured"] = "true"
	}
	return params
}

func freelancerFilterParams(f models.FreelancerFilter) map[string]string {
	params := pageParams(f.PageRequest)
	setIfNotEmpty(params, "search", f.Search)
	setIfNotEmpty(params, "location", f.Location)
	setIfNotEmpty(params, "skills", strings.Join(f.Skills, ","))
	setFloat(params, "minRating", f.MinRating)
	setFloat(params, "maxHourlyRate", f.MaxHourlyRate)
	if f.VerifiedOnly {
		params["isVerified"] = "true"
	}
	return params
}

func pageParams(p models.PageRequest) map[string]string {
	params := make(map[string]string)
	if p.Page > 0 {
		params["page"] = strconv.Itoa(p.Page)
	}
	if p.Limit > 0 {
		params["limit"] = strconv.Itoa(p.Limit)
	}
	return params
}

func setIfNotEmpty(params map[string]string, key, value string) {
	if value != "" {
		params[key] = value
	}
}

func setFloat(params map[string]string, key string, value *float64) {
	if value != nil {
		params[key] = strconv.FormatFloat(*value, 'f', -1, 64)
	}
}
