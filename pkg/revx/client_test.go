package revx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "me@example.com", body["email"])

		respond(w, http.StatusOK, map[string]interface{}{
			"status":     "success",
			"message":    "Login successful",
			"data":       map[string]interface{}{"id": 1, "username": "me", "email": "me@example.com"},
			"auth_token": "tok-123",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	user, token, err := client.Login(context.Background(), "me@example.com", "Sup3rsecret!")
	require.NoError(t, err)
	require.Equal(t, "me", user.Username)
	require.Equal(t, "tok-123", token)
}

func TestClient_ErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusUnauthorized, map[string]string{"detail": "invalid email or password"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, _, err := client.Login(context.Background(), "me@example.com", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "invalid email or password", apiErr.Error())
}

func TestClient_ErrorWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ListProjects(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "request failed with status 502", apiErr.Error())
}

func TestClient_BearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		respond(w, http.StatusOK, map[string]interface{}{
			"status": "success",
			"data":   []interface{}{},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithToken("tok-abc"))
	_, err := client.MyProjects(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-abc", gotAuth)
}

func TestClient_ListProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/project/list", r.URL.Path)
		respond(w, http.StatusOK, map[string]interface{}{
			"status": "success",
			"data": []map[string]interface{}{
				{"id": 1, "title": "First", "tags": []interface{}{}, "avg_rating": 4.5},
				{"id": 2, "title": "Second", "tags": []interface{}{}},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	projects, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	require.NotNil(t, projects[0].AvgRating)
	require.Equal(t, 4.5, *projects[0].AvgRating)
	require.Nil(t, projects[1].AvgRating)
}

func TestClient_SubmitProjectDropsStaleTagIDs(t *testing.T) {
	var posted ProjectInput
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/project/tags":
			respond(w, http.StatusOK, map[string]interface{}{
				"status": "success",
				"data": []map[string]interface{}{
					{"tag_id": 1, "tag_name": "go"},
					{"tag_id": 3, "tag_name": "web"},
				},
			})
		case "/project/create":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
			respond(w, http.StatusCreated, map[string]interface{}{
				"status": "success",
				"data":   map[string]interface{}{"id": 9, "title": posted.Title},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	project, err := client.SubmitProject(context.Background(), ProjectInput{
		Title:       "Tracker",
		Description: "Issue tracker",
		TagIDs:      []uint64{1, 99, 3},
	})
	require.NoError(t, err)
	require.Equal(t, uint64(9), project.ID)

	// Tag 99 is gone from the catalog and never reaches the server.
	require.Equal(t, []uint64{1, 3}, posted.TagIDs)
	require.NotContains(t, posted.TagIDs, uint64(99))
}

func TestClient_SubmitProjectUpdateDropsStaleTagIDs(t *testing.T) {
	var posted ProjectInput
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/project/tags":
			respond(w, http.StatusOK, map[string]interface{}{
				"status": "success",
				"data":   []map[string]interface{}{{"tag_id": 2, "tag_name": "cli"}},
			})
		case "/project/update/5":
			require.Equal(t, http.MethodPut, r.Method)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
			respond(w, http.StatusOK, map[string]interface{}{
				"status": "success",
				"data":   map[string]interface{}{"id": 5, "title": posted.Title},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.SubmitProjectUpdate(context.Background(), 5, ProjectInput{
		Title:  "Tracker",
		TagIDs: []uint64{42, 2},
	})
	require.NoError(t, err)
	require.Equal(t, []uint64{2}, posted.TagIDs)
}

func TestClient_SetTokenDuringRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, map[string]interface{}{
			"status": "success",
			"data":   []interface{}{},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithToken("tok-0"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			client.SetToken(fmt.Sprintf("tok-%d", i))
		}(i)
		go func() {
			defer wg.Done()
			_, err := client.ListProjects(context.Background())
			require.NoError(t, err)
		}()
	}
	wg.Wait()
	require.NotEmpty(t, client.Token())
}

func TestClient_AddReview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/project/add_review/7", r.URL.Path)

		var body ReviewInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "5", body.Rating)

		respond(w, http.StatusCreated, map[string]interface{}{
			"status": "success",
			"data":   map[string]interface{}{"id": 11, "project_id": 7, "rating": "5"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	review, err := client.AddReview(context.Background(), 7, ReviewInput{Rating: "5", Review: "Excellent work"})
	require.NoError(t, err)
	require.Equal(t, uint64(11), review.ID)
	require.Equal(t, "5", review.Rating)
}
