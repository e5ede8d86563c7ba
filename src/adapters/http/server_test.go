package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	httpadapter "activitytracker/src/adapters/http"
	"activitytracker/src/domain"
	"activitytracker/src/domain/entities"
	"activitytracker/src/services/activities"
	"activitytracker/src/services/users"
	"activitytracker/src/test_artefacts/comparer"
)

type stubUserService struct {
	user       *entities.User
	users      []*entities.User
	page       domain.Page
	count      int64
	err        error
	lastPage   [2]int
	lastCreate users.CreateUserInput
	lastUpdate users.UpdateUserInput
}

func (s *stubUserService) CreateUser(ctx context.Context, input users.CreateUserInput) (*entities.User, error) {
	s.lastCreate = input
	return s.user, s.err
}

func (s *stubUserService) GetUserByID(ctx context.Context, id entities.ID) (*entities.User, error) {
	return s.user, s.err
}

func (s *stubUserService) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	return s.user, s.err
}

func (s *stubUserService) GetAllUsers(ctx context.Context) []*entities.User {
	return s.users
}

func (s *stubUserService) GetUsersPage(ctx context.Context, page int, size int) (domain.Page, error) {
	s.lastPage = [2]int{page, size}
	return s.page, s.err
}

func (s *stubUserService) UpdateUser(ctx context.Context, id entities.ID, input users.UpdateUserInput) (*entities.User, error) {
	s.lastUpdate = input
	return s.user, s.err
}

func (s *stubUserService) DeleteUser(ctx context.Context, id entities.ID) error {
	return s.err
}

func (s *stubUserService) CountUsers(ctx context.Context) (int64, error) {
	return s.count, s.err
}

func (s *stubUserService) Authenticate(ctx context.Context, username string, password string) (*entities.User, error) {
	return s.user, s.err
}

type stubActivityService struct {
	activity   *entities.Activity
	activities []*entities.Activity
	err        error
	lastCreate activities.CreateActivityInput
	lastDelete entities.ID
}

func (s *stubActivityService) GetAllActivities(ctx context.Context) []*entities.Activity {
	return s.activities
}

func (s *stubActivityService) CreateActivity(ctx context.Context, input activities.CreateActivityInput) (*entities.Activity, error) {
	s.lastCreate = input
	return s.activity, s.err
}

func (s *stubActivityService) DeleteActivity(ctx context.Context, id entities.ID) error {
	s.lastDelete = id
	return s.err
}

func sampleUser() *entities.User {
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	activity := &entities.Activity{
		ID:         10,
		Name:       "run",
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Duration:   time.Hour,
		Importance: entities.ActivityImportanceLow,
		Status:     entities.ActivityStatusActive,
	}
	user := &entities.User{ID: 1, FirstName: "Ana", LastName: "Lima", Password: "$2a$hash", Username: "ana"}
	user.AddAuthority(entities.AuthorityUser)
	user.AddActivity(activity)
	user.AddActivityRequest(&entities.ActivityRequest{
		ID:          5,
		User:        user,
		Activity:    activity,
		RequestDate: start,
		Action:      entities.ActivityRequestActionComplete,
		Status:      entities.ActivityRequestStatusPending,
	})
	return user
}

var _ = Describe("Server", func() {
	var (
		service         *stubUserService
		activityService *stubActivityService
		handler         http.Handler
	)

	do := func(method string, target string, body string) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		request := httptest.NewRequest(method, target, reader)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	BeforeEach(func() {
		service = &stubUserService{}
		activityService = &stubActivityService{}
		server := httpadapter.NewServer(slog.New(slog.NewTextHandler(io.Discard, nil)), 0, service, activityService)
		handler = server.Handler()
	})

	Context("GET /v1/users/{id}", func() {
		It("should render the graph without the password", func() {
			// ARRANGE
			service.user = sampleUser()

			// ACT
			response := do(http.MethodGet, "/v1/users/1", "")

			// ASSERT
			Expect(response.Code).To(Equal(http.StatusOK))
			Expect(response.Body.String()).NotTo(ContainSubstring("hash"))

			expected := json.RawMessage(`{
				"id": 1,
				"first_name": "Ana",
				"last_name": "Lima",
				"username": "ana",
				"authorities": ["USER"],
				"activities": [{
					"id": 10,
					"name": "run",
					"description": "",
					"start_time": "2024-06-01T08:00:00Z",
					"end_time": "2024-06-01T09:00:00Z",
					"duration_seconds": 3600,
					"importance": "LOW",
					"status": "ACTIVE"
				}],
				"activity_requests": [{
					"id": 5,
					"activity_id": 10,
					"request_date": "2024-06-01T08:00:00Z",
					"action": "COMPLETE",
					"status": "PENDING"
				}]
			}`)
			Expect(json.RawMessage(response.Body.Bytes())).To(BeComparableTo(expected, comparer.JSONRawMessage()))
		})

		It("should reject a malformed id", func() {
			response := do(http.MethodGet, "/v1/users/abc", "")

			Expect(response.Code).To(Equal(http.StatusBadRequest))
		})
	})

	DescribeTable("error mapping",
		func(err error, status int) {
			service.err = err

			response := do(http.MethodGet, "/v1/users/by-username/ana", "")

			Expect(response.Code).To(Equal(status))
		},
		Entry("not found", fmt.Errorf("wrapped: %w", domain.ErrEntityNotFound), http.StatusNotFound),
		Entry("invalid input", domain.ErrInvalidInput, http.StatusBadRequest),
		Entry("page out of range", domain.ErrPageOutOfRange, http.StatusBadRequest),
		Entry("username taken", domain.ErrUsernameTaken, http.StatusConflict),
		Entry("bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized),
		Entry("anything else", errors.New("db down"), http.StatusInternalServerError),
	)

	It("should hide internal errors behind ErrUnavailableServer", func() {
		service.err = errors.New("db down")

		response := do(http.MethodGet, "/v1/users/1", "")

		Expect(response.Body.String()).To(ContainSubstring(domain.ErrUnavailableServer.Error()))
		Expect(response.Body.String()).NotTo(ContainSubstring("db down"))
	})

	Context("GET /v1/users", func() {
		It("should list everyone without paging parameters", func() {
			service.users = []*entities.User{sampleUser()}

			response := do(http.MethodGet, "/v1/users", "")

			Expect(response.Code).To(Equal(http.StatusOK))
			var body []httpadapter.UserDTO
			Expect(json.Unmarshal(response.Body.Bytes(), &body)).To(Succeed())
			Expect(body).To(HaveLen(1))
		})

		It("should page when page or size is present", func() {
			service.page = domain.Page{Items: []*entities.User{sampleUser()}, Page: 1, Size: 5, TotalRecords: 6, TotalPages: 2}

			response := do(http.MethodGet, "/v1/users?page=1&size=5", "")

			Expect(response.Code).To(Equal(http.StatusOK))
			Expect(service.lastPage).To(Equal([2]int{1, 5}))
			var body httpadapter.PageDTO
			Expect(json.Unmarshal(response.Body.Bytes(), &body)).To(Succeed())
			Expect(body.TotalPages).To(Equal(2))
			Expect(body.Items).To(HaveLen(1))
		})

		It("should default the page size", func() {
			do(http.MethodGet, "/v1/users?page=0", "")

			Expect(service.lastPage).To(Equal([2]int{0, 20}))
		})

		It("should reject a non numeric page", func() {
			response := do(http.MethodGet, "/v1/users?page=x", "")

			Expect(response.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("GET /v1/users/count", func() {
		It("should return the count", func() {
			service.count = 7

			response := do(http.MethodGet, "/v1/users/count", "")

			Expect(response.Code).To(Equal(http.StatusOK))
			Expect(json.RawMessage(response.Body.Bytes())).To(BeComparableTo(json.RawMessage(`{"count":7}`), comparer.JSONRawMessage()))
		})
	})

	Context("POST /v1/users", func() {
		It("should create and answer 201", func() {
			service.user = sampleUser()

			response := do(http.MethodPost, "/v1/users", `{"first_name":"Ana","last_name":"Lima","username":"ana","password":"x","authorities":["ADMIN"]}`)

			Expect(response.Code).To(Equal(http.StatusCreated))
			Expect(service.lastCreate.Password).To(Equal("x"))
			Expect(service.lastCreate.Authorities).To(HaveExactElements(entities.AuthorityAdmin))
		})

		It("should reject a malformed body", func() {
			response := do(http.MethodPost, "/v1/users", `{`)

			Expect(response.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("PUT /v1/users/{id}", func() {
		It("should keep authorities when the field is absent", func() {
			service.user = sampleUser()

			response := do(http.MethodPut, "/v1/users/1", `{"last_name":"Souza"}`)

			Expect(response.Code).To(Equal(http.StatusOK))
			Expect(service.lastUpdate.Authorities).To(BeNil())
		})

		It("should pass an explicit empty authority list through", func() {
			service.user = sampleUser()

			do(http.MethodPut, "/v1/users/1", `{"authorities":[]}`)

			Expect(service.lastUpdate.Authorities).NotTo(BeNil())
			Expect(service.lastUpdate.Authorities).To(BeEmpty())
		})
	})

	Context("DELETE /v1/users/{id}", func() {
		It("should answer 204", func() {
			response := do(http.MethodDelete, "/v1/users/1", "")

			Expect(response.Code).To(Equal(http.StatusNoContent))
		})
	})

	Context("POST /v1/auth/login", func() {
		It("should answer 401 on bad credentials", func() {
			service.err = domain.ErrInvalidCredentials

			response := do(http.MethodPost, "/v1/auth/login", `{"username":"ana","password":"nope"}`)

			Expect(response.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Context("GET /v1/activities", func() {
		It("should list the catalog", func() {
			// ARRANGE
			activityService.activities = []*entities.Activity{sampleUser().Activities[0]}

			// ACT
			response := do(http.MethodGet, "/v1/activities", "")

			// ASSERT
			Expect(response.Code).To(Equal(http.StatusOK))
			expected := json.RawMessage(`[{
				"id": 10,
				"name": "run",
				"description": "",
				"start_time": "2024-06-01T08:00:00Z",
				"end_time": "2024-06-01T09:00:00Z",
				"duration_seconds": 3600,
				"importance": "LOW",
				"status": "ACTIVE"
			}]`)
			Expect(json.RawMessage(response.Body.Bytes())).To(BeComparableTo(expected, comparer.JSONRawMessage()))
		})

		It("should render an empty catalog as an empty array", func() {
			response := do(http.MethodGet, "/v1/activities", "")

			Expect(response.Code).To(Equal(http.StatusOK))
			Expect(strings.TrimSpace(response.Body.String())).To(Equal("[]"))
		})
	})

	Context("POST /v1/activities", func() {
		It("should create and answer 201", func() {
			// ARRANGE
			activityService.activity = sampleUser().Activities[0]

			// ACT
			response := do(http.MethodPost, "/v1/activities",
				`{"name":"run","start_time":"2024-06-01T08:00:00Z","duration_seconds":1800,"importance":"HIGH"}`)

			// ASSERT
			Expect(response.Code).To(Equal(http.StatusCreated))
			Expect(activityService.lastCreate.Name).To(Equal("run"))
			Expect(activityService.lastCreate.Duration).To(Equal(30 * time.Minute))
			Expect(activityService.lastCreate.Importance).To(Equal(entities.ActivityImportanceHigh))
			Expect(activityService.lastCreate.StartTime).To(Equal(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)))
			Expect(activityService.lastCreate.EndTime.IsZero()).To(BeTrue())
		})

		It("should answer 400 on invalid input", func() {
			activityService.err = fmt.Errorf("wrapped: %w", domain.ErrInvalidInput)

			response := do(http.MethodPost, "/v1/activities", `{"name":""}`)

			Expect(response.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reject a malformed body", func() {
			response := do(http.MethodPost, "/v1/activities", `{`)

			Expect(response.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("DELETE /v1/activities/{id}", func() {
		It("should answer 204", func() {
			response := do(http.MethodDelete, "/v1/activities/10", "")

			Expect(response.Code).To(Equal(http.StatusNoContent))
			Expect(activityService.lastDelete).To(Equal(entities.ID(10)))
		})

		It("should reject a malformed id", func() {
			response := do(http.MethodDelete, "/v1/activities/0", "")

			Expect(response.Code).To(Equal(http.StatusBadRequest))
			Expect(response.Body.String()).To(ContainSubstring("invalid activity id format"))
		})
	})

	Context("GET /metrics", func() {
		It("should expose the request counter", func() {
			do(http.MethodGet, "/v1/users/count", "")

			response := do(http.MethodGet, "/metrics", "")

			Expect(response.Code).To(Equal(http.StatusOK))
			Expect(response.Body.String()).To(ContainSubstring("activity_tracker_http_requests_total"))
		})
	})
})
