// Package client is a typed HTTP client for the marketplace API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"propmatch_backend/internal/services/dto"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultTimeout = 15 * time.Second
	apiPrefix      = "/api/v1"
)

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Domain     string `json:"domain"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d %s: %s", e.StatusCode, e.Code, e.Message)
}

type errorEnvelope struct {
	Error *APIError `json:"error"`
}

// Client holds one bearer token; use one Client per signed-in user.
type Client struct {
	http  *resty.Client
	token string
}

func New(baseURL string) *Client {
	return NewWithHTTPClient(baseURL, nil)
}

// NewWithHTTPClient lets tests route requests through a custom transport.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	var rc *resty.Client
	if hc != nil {
		rc = resty.NewWithClient(hc)
	} else {
		rc = resty.New()
	}
	rc.SetBaseURL(baseURL + apiPrefix).
		SetTimeout(DefaultTimeout).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &Client{http: rc}
}

func (c *Client) Token() string { return c.token }

// SetToken replaces the bearer token sent with every request.
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) request(ctx context.Context) *resty.Request {
	r := c.http.R().SetContext(ctx).SetError(&errorEnvelope{})
	if c.token != "" {
		r.SetAuthToken(c.token)
	}
	return r
}

func (c *Client) do(r *resty.Request, method, path string, expected int) (*resty.Response, error) {
	resp, err := r.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode() == expected {
		return resp, nil
	}

	apiErr := &APIError{}
	if env, ok := resp.Error().(*errorEnvelope); ok && env.Error != nil {
		apiErr = env.Error
	}
	apiErr.StatusCode = resp.StatusCode()
	return resp, apiErr
}

func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserDTO, error) {
	var out struct {
		User dto.UserDTO `json:"user"`
	}
	if _, err := c.do(c.request(ctx).SetBody(req).SetResult(&out), http.MethodPost, "/auth/register", http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Login stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	req := dto.LoginRequest{Email: email, Password: password}
	if _, err := c.do(c.request(ctx).SetBody(req).SetResult(&out), http.MethodPost, "/auth/login", http.StatusOK); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*dto.UserDTO, error) {
	var out struct {
		User dto.UserDTO `json:"user"`
	}
	if _, err := c.do(c.request(ctx).SetResult(&out), http.MethodGet, "/auth/me", http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) CreateJob(ctx context.Context, req dto.CreateJobRequest) (*dto.JobDTO, error) {
	var out dto.JobDTO
	if _, err := c.do(c.request(ctx).SetBody(req).SetResult(&out), http.MethodPost, "/jobs/customer", http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetJob(ctx context.Context, jobID string) (*dto.JobDTO, error) {
	var out dto.JobDTO
	if _, err := c.do(c.request(ctx).SetResult(&out), http.MethodGet, "/jobs/"+url.PathEscape(jobID), http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCustomerJobs(ctx context.Context, customerID string) ([]dto.JobDTO, error) {
	var out []dto.JobDTO
	if _, err := c.do(c.request(ctx).SetResult(&out), http.MethodGet, "/jobs/customer/"+url.PathEscape(customerID), http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateJob(ctx context.Context, jobID string, req dto.UpdateJobRequest) error {
	_, err := c.do(c.request(ctx).SetBody(req), http.MethodPut, "/jobs/customer/"+url.PathEscape(jobID), http.StatusNoContent)
	return err
}

func (c *Client) DeleteJob(ctx context.Context, jobID string) error {
	_, err := c.do(c.request(ctx), http.MethodDelete, "/jobs/customer/"+url.PathEscape(jobID), http.StatusNoContent)
	return err
}

func (c *Client) Shortlist(ctx context.Context, jobID string, professionalIDs ...string) (*dto.JobDTO, error) {
	var out dto.JobDTO
	req := dto.ShortlistRequest{ProfessionalIDs: professionalIDs}
	path := "/jobs/customer/" + url.PathEscape(jobID) + "/shortlist"
	if _, err := c.do(c.request(ctx).SetBody(req).SetResult(&out), http.MethodPost, path, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RefreshSuggestions(ctx context.Context, jobID string) (*dto.JobDTO, error) {
	var out dto.JobDTO
	path := "/jobs/customer/" + url.PathEscape(jobID) + "/suggestions/refresh"
	if _, err := c.do(c.request(ctx).SetResult(&out), http.MethodPost, path, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CloseJob(ctx context.Context, jobID string) (*dto.JobDTO, error) {
	var out dto.JobDTO
	path := "/jobs/customer/" + url.PathEscape(jobID) + "/close"
	if _, err := c.do(c.request(ctx).SetResult(&out), http.MethodPost, path, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Finalise(ctx context.Context, jobID, professionalID string) (*dto.JobDTO, error) {
	var out dto.JobDTO
	req := dto.FinaliseRequest{JobID: jobID, ProfessionalID: professionalID}
	if _, err := c.do(c.request(ctx).SetBody(req).SetResult(&out), http.MethodPost, "/jobs/customer/finalise", http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ApplicableJobs(ctx context.Context) ([]dto.JobDTO, error) {
	var out []dto.JobDTO
	if _, err := c.do(c.request(ctx).SetResult(&out), http.MethodGet, "/jobs/professional/applicable", http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) FinalisedJobs(ctx context.Context) ([]dto.JobDTO, error) {
	var out []dto.JobDTO
	if _, err := c.do(c.request(ctx).SetResult(&out), http.MethodGet, "/jobs/professional/finalised", http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MyProfessionalProfile(ctx context.Context) (*dto.ProfessionalDTO, error) {
	var out dto.ProfessionalDTO
	if _, err := c.do(c.request(ctx).SetResult(&out), http.MethodGet, "/professionals/me", http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfessionalProfile(ctx context.Context, req dto.UpdateProfessionalRequest) (*dto.ProfessionalDTO, error) {
	var out dto.ProfessionalDTO
	if _, err := c.do(c.request(ctx).SetBody(req).SetResult(&out), http.MethodPut, "/professionals/me", http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerifyProfessional(ctx context.Context, professionalID string) (*dto.VerificationResponse, error) {
	return c.decide(ctx, professionalID, "verify")
}

func (c *Client) RejectProfessional(ctx context.Context, professionalID string) (*dto.VerificationResponse, error) {
	return c.decide(ctx, professionalID, "reject")
}

func (c *Client) decide(ctx context.Context, professionalID, action string) (*dto.VerificationResponse, error) {
	var out dto.VerificationResponse
	path := "/admin/professionals/" + url.PathEscape(professionalID) + "/" + action
	if _, err := c.do(c.request(ctx).SetResult(&out), http.MethodPut, path, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProfessionals filters by verification status when status is not empty.
func (c *Client) ListProfessionals(ctx context.Context, status string) ([]dto.ProfessionalDTO, error) {
	var out []dto.ProfessionalDTO
	r := c.request(ctx).SetResult(&out)
	if status != "" {
		r.SetQueryParam("status", status)
	}
	if _, err := c.do(r, http.MethodGet, "/admin/professionals", http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListCustomers(ctx context.Context) ([]dto.UserDTO, error) {
	var out []dto.UserDTO
	if _, err := c.do(c.request(ctx).SetResult(&out), http.MethodGet, "/admin/customers", http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAllJobs filters by job status when status is not empty.
func (c *Client) ListAllJobs(ctx context.Context, status string) ([]dto.JobDTO, error) {
	var out []dto.JobDTO
	r := c.request(ctx).SetResult(&out)
	if status != "" {
		r.SetQueryParam("status", status)
	}
	if _, err := c.do(r, http.MethodGet, "/admin/jobs", http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// ExportJobs returns the xlsx workbook bytes.
func (c *Client) ExportJobs(ctx context.Context) ([]byte, error) {
	resp, err := c.do(c.request(ctx).SetHeader("Accept", "*/*"), http.MethodGet, "/admin/jobs/export", http.StatusOK)
	if err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

func (c *Client) Regions(ctx context.Context) ([]string, error) {
	var out []string
	if _, err := c.do(c.request(ctx).SetResult(&out), http.MethodGet, "/location/regions", http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) States(ctx context.Context) ([]string, error) {
	var out []string
	if _, err := c.do(c.request(ctx).SetResult(&out), http.MethodGet, "/location/states", http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchSuburbs(ctx context.Context, query string) ([]dto.SuburbDTO, error) {
	var out []dto.SuburbDTO
	r := c.request(ctx).SetResult(&out).SetQueryParam("query", query)
	if _, err := c.do(r, http.MethodGet, "/location/search", http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}
