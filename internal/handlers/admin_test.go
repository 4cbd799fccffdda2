package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/revxlabs/revx/internal/database"
	"github.com/revxlabs/revx/internal/dto"
	"github.com/revxlabs/revx/internal/models"
	"github.com/revxlabs/revx/internal/repository"
	"github.com/revxlabs/revx/internal/services"
)

type adminTestEnv struct {
	db             *gorm.DB
	handler        *AdminHandler
	authService    *services.AuthService
	projectService *services.ProjectService
}

func setupAdminTestEnv(t *testing.T) adminTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Project{},
		&models.ProjectImage{},
		&models.Review{},
		&models.Contributor{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	tagRepo := repository.NewTagRepository(db)
	adminService := services.NewAdminService(userRepo, projectRepo)
	authService := services.NewAuthService(userRepo, db, "test-secret")
	projectService := services.NewProjectService(projectRepo, userRepo, tagRepo)
	handler := NewAdminHandler(adminService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return adminTestEnv{
		db:             db,
		handler:        handler,
		authService:    authService,
		projectService: projectService,
	}
}

func (env adminTestEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user, _, err := env.authService.Register(services.RegisterInput{
		Email:    username + "@example.com",
		Username: username,
		FullName: "Test " + username,
		Password: "Sup3rsecret!",
	})
	require.NoError(t, err)
	return user
}

func TestAdminHandler_Metrics(t *testing.T) {
	env := setupAdminTestEnv(t)
	alice := env.createUser(t, "alice")
	env.createUser(t, "bob")

	_, err := env.projectService.Create(services.CreateProjectInput{
		Title:       "Counted Project",
		Description: "A sufficiently long project description",
		OwnerID:     alice.ID,
	})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/admin/metrics", env.handler.Metrics)

	req := httptest.NewRequest(http.MethodGet, "/admin/metrics", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var metrics services.DashboardMetrics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &metrics))
	require.Equal(t, int64(2), metrics.TotalUsers)
	require.Equal(t, int64(1), metrics.TotalProjects)
	require.Equal(t, int64(0), metrics.TotalReviews)
	// Everything was created just now, so recents match totals.
	require.Equal(t, int64(2), metrics.RecentUsers)
	require.Equal(t, int64(1), metrics.RecentProjects)
}

func TestAdminHandler_ListUsers(t *testing.T) {
	env := setupAdminTestEnv(t)
	env.createUser(t, "first")
	env.createUser(t, "second")

	r := gin.New()
	r.GET("/admin/users", env.handler.ListUsers)

	req := httptest.NewRequest(http.MethodGet, "/admin/users?limit=1&offset=0", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Status string             `json:"status"`
		Count  int                `json:"count"`
		Data   []dto.AdminUserDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, 1, response.Count)
	require.Len(t, response.Data, 1)
}

func TestAdminHandler_SetUserAdmin(t *testing.T) {
	env := setupAdminTestEnv(t)
	user := env.createUser(t, "promotee")
	require.False(t, user.IsAdmin)

	r := gin.New()
	r.PUT("/admin/users/:user_id/admin", env.handler.SetUserAdmin)

	body, err := json.Marshal(map[string]bool{"is_admin": true})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/admin/users/%d/admin", user.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	require.NoError(t, env.db.First(&stored, user.ID).Error)
	require.True(t, stored.IsAdmin)
}

func TestAdminHandler_DeleteUser_Cascades(t *testing.T) {
	env := setupAdminTestEnv(t)
	owner := env.createUser(t, "departing")
	reviewer := env.createUser(t, "bystander")

	project, err := env.projectService.Create(services.CreateProjectInput{
		Title:       "Orphaned Project",
		Description: "A sufficiently long project description",
		OwnerID:     owner.ID,
	})
	require.NoError(t, err)

	_, err = env.projectService.AddReview(project.ID, reviewer.ID, "Written before the purge", "4")
	require.NoError(t, err)

	r := gin.New()
	r.DELETE("/admin/users/:user_id", env.handler.DeleteUser)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/users/%d", owner.ID), nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// The owner's projects and their dependent rows are gone too.
	var projectCount, reviewCount int64
	require.NoError(t, env.db.Model(&models.Project{}).Count(&projectCount).Error)
	require.NoError(t, env.db.Model(&models.Review{}).Count(&reviewCount).Error)
	require.Equal(t, int64(0), projectCount)
	require.Equal(t, int64(0), reviewCount)

	// The reviewer is untouched.
	var stored models.User
	require.NoError(t, env.db.First(&stored, reviewer.ID).Error)
}

func TestAdminHandler_DeleteProject(t *testing.T) {
	env := setupAdminTestEnv(t)
	owner := env.createUser(t, "unlucky")

	project, err := env.projectService.Create(services.CreateProjectInput{
		Title:       "Removed Project",
		Description: "A sufficiently long project description",
		OwnerID:     owner.ID,
	})
	require.NoError(t, err)

	r := gin.New()
	r.DELETE("/admin/projects/:project_id", env.handler.DeleteProject)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/projects/%d", project.ID), nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	_, err = env.projectService.Get(project.ID)
	require.ErrorIs(t, err, services.ErrProjectNotFound)
}

func TestAdminHandler_DeleteUser_NotFound(t *testing.T) {
	env := setupAdminTestEnv(t)

	r := gin.New()
	r.DELETE("/admin/users/:user_id", env.handler.DeleteUser)

	req := httptest.NewRequest(http.MethodDelete, "/admin/users/9999", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}
