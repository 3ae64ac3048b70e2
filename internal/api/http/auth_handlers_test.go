package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	appUser "github.com/prashana14/StudyReuse-sub000/internal/application/user"
	domainUser "github.com/prashana14/StudyReuse-sub000/internal/domain/user"
	userMocks "github.com/prashana14/StudyReuse-sub000/internal/domain/user/mocks"
	"github.com/prashana14/StudyReuse-sub000/internal/infrastructure/sse"
)

func bootstrapServer(t *testing.T) (*Server, *userMocks.MockRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	userRepo := userMocks.NewMockRepository(ctrl)
	userSvc := appUser.NewService(userRepo, zerolog.Nop())
	srv := NewServer(nil, userSvc, nil, nil, nil, sse.NewHub(), "session", false)
	return srv, userRepo
}

func TestServer_BootstrapAdmin(t *testing.T) {
	body := `{"username":"admin","email":"admin@campus.example","password":"Bootstrap-Pass1!"}`

	t.Run("first user becomes admin", func(t *testing.T) {
		srv, userRepo := bootstrapServer(t)

		userRepo.EXPECT().Count(gomock.Any()).Return(0, nil)
		userRepo.EXPECT().GetByUsername(gomock.Any(), "admin").Return(nil, nil)
		userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/bootstrap", strings.NewReader(body))
		srv.Router().ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var u domainUser.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
		assert.Equal(t, domainUser.RoleAdmin, u.Role)
		assert.Equal(t, "admin", u.Username)
	})

	t.Run("closed once any user exists", func(t *testing.T) {
		srv, userRepo := bootstrapServer(t)

		userRepo.EXPECT().Count(gomock.Any()).Return(1, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/bootstrap", strings.NewReader(body))
		srv.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
