package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/escrow-api/internal/config"
	"github.com/MKhiriev/escrow-api/internal/logger"
	"github.com/MKhiriev/escrow-api/internal/mock"
	"github.com/MKhiriev/escrow-api/internal/service"
	"github.com/MKhiriev/escrow-api/models"
)

const (
	clientToken     = "client-token"
	freelancerToken = "freelancer-token"
)

var (
	clientIdentity = models.Identity{
		ID:       1,
		Email:    "client@example.com",
		Name:     "Carol Client",
		UserType: models.UserTypeClient,
	}
	freelancerIdentity = models.Identity{
		ID:       2,
		Email:    "free@example.com",
		Name:     "Fred Freelancer",
		UserType: models.UserTypeFreelancer,
	}
)

type testServices struct {
	auth      *mock.MockAuthService
	users     *mock.MockUserService
	jobs      *mock.MockJobService
	proposals *mock.MockProposalService
	support   *mock.MockSupportService
	appInfo   *mock.MockAppInfoService
}

// newMockedHandler builds a Handler over gomock services. The two known
// tokens authenticate as clientIdentity and freelancerIdentity, and
// presence updates always succeed.
func newMockedHandler(t *testing.T) (*Handler, testServices) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := testServices{
		auth:      mock.NewMockAuthService(ctrl),
		users:     mock.NewMockUserService(ctrl),
		jobs:      mock.NewMockJobService(ctrl),
		proposals: mock.NewMockProposalService(ctrl),
		support:   mock.NewMockSupportService(ctrl),
		appInfo:   mock.NewMockAppInfoService(ctrl),
	}

	m.auth.EXPECT().Authenticate(gomock.Any(), clientToken).Return(clientIdentity, nil).AnyTimes()
	m.auth.EXPECT().Authenticate(gomock.Any(), freelancerToken).Return(freelancerIdentity, nil).AnyTimes()
	m.users.EXPECT().TouchPresence(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	h := NewHandler(&service.Services{
		AuthService:     m.auth,
		UserService:     m.users,
		JobService:      m.jobs,
		ProposalService: m.proposals,
		SupportService:  m.support,
		AppInfoService:  m.appInfo,
	}, config.Server{
		AllowedOrigins: []string{"http://localhost:3000"},
		RequestTimeout: 5 * time.Second,
	}, logger.Nop())

	return h, m
}

// serve sends one request through the full router.
func serve(t *testing.T, h *Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func errorBody(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	return decodeBody[models.ErrorResponse](t, rr)
}
