package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotify/models"
	"slotify/services/scheduling"
	"slotify/utils"
)

type stubScheduler struct {
	result models.AvailabilityResult
	err    error
	gotReq scheduling.AvailabilityRequest
}

func (s *stubScheduler) GetAvailableSlots(_ context.Context, req scheduling.AvailabilityRequest) (models.AvailabilityResult, error) {
	s.gotReq = req
	return s.result, s.err
}

func (s *stubScheduler) BlockPeriod(context.Context, scheduling.BlockPeriodInput) (*models.BlockedPeriod, error) {
	return nil, nil
}

func (s *stubScheduler) BlockPeriodForMembers(context.Context, []string, scheduling.BlockPeriodInput) []scheduling.MemberBlockResult {
	return nil
}

func (s *stubScheduler) RemoveBlockedPeriod(context.Context, string, string) error { return nil }

func (s *stubScheduler) ConfirmBooking(context.Context, scheduling.BookingRequest) (*models.Booking, error) {
	return nil, nil
}

func (s *stubScheduler) CancelBooking(context.Context, string) error { return nil }

func availabilityRouter(stub *stubScheduler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAvailabilityHandler(stub, nil, utils.GetLogger())
	r.GET("/api/availability", h.GetAvailableSlots)
	return r
}

func TestGetAvailableSlotsHandler(t *testing.T) {
	stub := &stubScheduler{result: models.AvailabilityResult{
		Slots: []models.CandidateSlot{{
			Date: "2025-06-02", Start: 540, End: 570,
			StartTime: "09:00", EndTime: "09:30", MemberID: "member-a",
		}},
	}}
	r := availabilityRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/availability?providerId=prov-1&serviceId=svc-cut&from=2025-06-02&to=2025-06-02", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body models.AvailabilityResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Slots, 1)
	assert.Equal(t, "09:00", body.Slots[0].StartTime)
	assert.Equal(t, "prov-1", stub.gotReq.ProviderID)
	assert.Equal(t, "2025-06-02", stub.gotReq.ToDate)
}

func TestGetAvailableSlotsHandlerDefaultsRange(t *testing.T) {
	stub := &stubScheduler{}
	r := availabilityRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/availability?providerId=prov-1&serviceId=svc-cut", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, time.Now().Format(models.DateLayout), stub.gotReq.FromDate)
	assert.NotEmpty(t, stub.gotReq.ToDate)
}

func TestGetAvailableSlotsHandlerMissingParams(t *testing.T) {
	r := availabilityRouter(&stubScheduler{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/availability?providerId=prov-1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAvailableSlotsHandlerInvalidInput(t *testing.T) {
	stub := &stubScheduler{err: scheduling.NewInvalidInputError("unknown service")}
	r := availabilityRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/availability?providerId=prov-1&serviceId=bogus&from=2025-06-02&to=2025-06-02", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAvailableSlotsHandlerAllMembersFailed(t *testing.T) {
	stub := &stubScheduler{
		result: models.AvailabilityResult{
			Slots:             []models.CandidateSlot{},
			FailedMembers:     3,
			AvailabilityError: "could not load availability for any member",
		},
		err: &scheduling.DataUnavailableError{FailedMembers: 3},
	}
	r := availabilityRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/availability?providerId=prov-1&serviceId=svc-cut&from=2025-06-02&to=2025-06-02", nil)
	r.ServeHTTP(w, req)

	// "Could not load availability" is not the same as "no slots".
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body models.AvailabilityResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.FailedMembers)
	assert.NotEmpty(t, body.AvailabilityError)
}
