//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"tablebook/internal/domain/hold"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/venue"
	"tablebook/internal/handler/api"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/usecase/commands"
	"tablebook/tests/common/httptest"
	commandsmock "tablebook/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type HoldHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockHoldCommands
	handler      *api.HoldHandler

	venueID uuid.UUID
	tableID uuid.UUID
}

func (s *HoldHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockHoldCommands(s.mockCtrl)
	s.handler = api.NewHoldHandler(s.mockCommands)

	s.venueID = uuid.New()
	s.tableID = uuid.New()

	s.router.POST("/api/venues/:venue_id/holds", s.handler.CreateHold)
	s.router.GET("/api/holds/:id", s.handler.GetHold)
	s.router.DELETE("/api/holds/:id", s.handler.CancelHold)
}

func (s *HoldHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestHoldHandlerSuite(t *testing.T) {
	suite.Run(t, new(HoldHandlerTestSuite))
}

func (s *HoldHandlerTestSuite) sampleHold() hold.Hold {
	return hold.Hold{
		ID:           uuid.New(),
		VenueID:      s.venueID,
		TableID:      s.tableID,
		PartySize:    2,
		SlotDate:     "2025-06-01",
		SlotTime:     "18:00",
		SlotStartUTC: time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
		ExpiresAt:    time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC),
		Status:       hold.StatusHeld,
	}
}

func (s *HoldHandlerTestSuite) createBody() map[string]any {
	return map[string]any{
		"tableId":   s.tableID.String(),
		"date":      "2025-06-01",
		"time":      "18:00",
		"partySize": 2,
	}
}

func (s *HoldHandlerTestSuite) TestCreateHold() {
	url := "/api/venues/" + s.venueID.String() + "/holds"

	s.Run("success: returns 201 with the created hold", func() {
		created := s.sampleHold()
		s.mockCommands.EXPECT().CreateHold(gomock.Any(), gomock.Any()).
			Return(created, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, s.createBody(), nil)

		var body resdto.HoldResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(created.ID, body.ID)
		s.Equal("HELD", body.Status)
	})

	s.Run("error: 400 on malformed venue id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/venues/nope/holds", s.createBody(), nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	s.Run("error: 400 on missing required fields", func() {
		body := s.createBody()
		delete(body, "partySize")
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	s.Run("error: maps usecase errors to the error taxonomy", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedCode   string
		}{
			{
				name: "slot conflict with detail",
				commandsError: &commands.SlotConflictError{Conflicts: reservation.Conflicts{
					Reservations: []reservation.ConflictingReservation{},
					Holds:        []reservation.ConflictingHold{{ID: uuid.New(), TableID: s.tableID}},
				}},
				expectedStatus: http.StatusConflict,
				expectedCode:   "CONFLICT",
			},
			{
				name:           "invalid ttl",
				commandsError:  hold.ErrInvalidTTL,
				expectedStatus: http.StatusBadRequest,
				expectedCode:   "VALIDATION_ERROR",
			},
			{
				name:           "table too small",
				commandsError:  commands.ErrTableTooSmall,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedCode:   "VALIDATION_ERROR",
			},
			{
				name:           "table not found",
				commandsError:  venue.ErrTableNotFound,
				expectedStatus: http.StatusNotFound,
				expectedCode:   "NOT_FOUND",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateHold(gomock.Any(), gomock.Any()).
					Return(hold.Hold{}, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, s.createBody(), nil)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedCode)
			})
		}
	})
}

func (s *HoldHandlerTestSuite) TestGetHold() {
	existing := s.sampleHold()

	s.Run("success: returns 200", func() {
		s.mockCommands.EXPECT().GetHold(gomock.Any(), existing.ID).
			Return(existing, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/holds/"+existing.ID.String(), nil, nil)

		var body resdto.HoldResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(existing.ID, body.ID)
	})

	s.Run("error: 404 for unknown hold", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().GetHold(gomock.Any(), id).
			Return(hold.Hold{}, hold.ErrNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/holds/"+id.String(), nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "NOT_FOUND")
	})

	s.Run("error: 400 for malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/holds/nope", nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})
}

func (s *HoldHandlerTestSuite) TestCancelHold() {
	id := uuid.New()

	s.Run("success: returns 204", func() {
		s.mockCommands.EXPECT().CancelHold(gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/holds/"+id.String(), nil, nil)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 when the hold is no longer active", func() {
		s.mockCommands.EXPECT().CancelHold(gomock.Any(), id).Return(hold.ErrInvalidState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/holds/"+id.String(), nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "CONFLICT")
	})

	s.Run("error: 404 for unknown hold", func() {
		s.mockCommands.EXPECT().CancelHold(gomock.Any(), id).Return(hold.ErrNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/holds/"+id.String(), nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "NOT_FOUND")
	})
}
