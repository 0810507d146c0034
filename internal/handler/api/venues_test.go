//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"tablebook/internal/domain/venue"
	"tablebook/internal/handler/api"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/usecase/queries"
	"tablebook/tests/common/httptest"
	queriesmock "tablebook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type VenueHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
	handler     *api.VenueHandler

	venueID uuid.UUID
}

func (s *VenueHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewVenueHandler(s.mockQueries)

	s.venueID = uuid.New()

	s.router.GET("/api/venues/:venue_id/availability", s.handler.Availability)
	s.router.GET("/api/venues/:venue_id/suggestions", s.handler.Suggestions)
}

func (s *VenueHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestVenueHandlerSuite(t *testing.T) {
	suite.Run(t, new(VenueHandlerTestSuite))
}

func (s *VenueHandlerTestSuite) TestAvailability() {
	base := "/api/venues/" + s.venueID.String() + "/availability"

	s.Run("success: binds query params and returns free tables", func() {
		free := []venue.Table{{ID: uuid.New(), VenueID: s.venueID, Label: "T1", Capacity: 4, Zone: "main"}}
		s.mockQueries.EXPECT().FreeTables(gomock.Any(), queries.AvailabilityInput{
			VenueID:         s.venueID,
			Date:            "2025-06-01",
			Time:            "19:00",
			DurationMinutes: 120,
			PartySize:       2,
		}).Return(free, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			base+"?date=2025-06-01&time=19:00&partySize=2&durationMinutes=120", nil, nil)

		var body []resdto.TableResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal("T1", body[0].Label)
	})

	s.Run("success: durationMinutes defaults to 90", func() {
		s.mockQueries.EXPECT().FreeTables(gomock.Any(), gomock.Cond(func(in queries.AvailabilityInput) bool {
			return in.DurationMinutes == 90
		})).Return([]venue.Table{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			base+"?date=2025-06-01&time=19:00&partySize=2", nil, nil)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 when partySize is missing or non-positive", func() {
		for _, q := range []string{"", "?partySize=0", "?partySize=abc"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+q, nil, nil)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
		}
	})
}

func (s *VenueHandlerTestSuite) TestSuggestions() {
	base := "/api/venues/" + s.venueID.String() + "/suggestions"

	s.Run("success: returns ranked seating options", func() {
		t1, t2 := uuid.New(), uuid.New()
		ranked := []queries.Suggestion{
			{TableIDs: []uuid.UUID{t1}, Labels: []string{"T5"}, Capacity: 6},
			{TableIDs: []uuid.UUID{t1, t2}, Labels: []string{"T1", "T2"}, Capacity: 8},
		}
		s.mockQueries.EXPECT().SuggestTables(gomock.Any(), gomock.Any()).
			Return(ranked, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			base+"?date=2025-06-01&time=19:00&partySize=6", nil, nil)

		var body []resdto.SuggestionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 2)
		s.Equal([]string{"T5"}, body[0].Labels)
		s.Len(body[1].TableIDs, 2)
	})
}
