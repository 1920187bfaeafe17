package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-gym/internal/attendance"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	scanFn    func(ctx context.Context, gymID, memberID string, req attendance.ScanRequest) (attendance.SessionOutcome, error)
	manualFn  func(ctx context.Context, gymID, staffUserID string, req attendance.ManualRequest) (attendance.SessionOutcome, error)
	historyFn func(ctx context.Context, gymID, actorMemberID string, canReadAll bool) ([]attendance.SessionResponse, error)
}

func (f *fakeService) Scan(ctx context.Context, gymID, memberID string, req attendance.ScanRequest) (attendance.SessionOutcome, error) {
	return f.scanFn(ctx, gymID, memberID, req)
}
func (f *fakeService) Manual(ctx context.Context, gymID, staffUserID string, req attendance.ManualRequest) (attendance.SessionOutcome, error) {
	return f.manualFn(ctx, gymID, staffUserID, req)
}
func (f *fakeService) History(ctx context.Context, gymID, actorMemberID string, canReadAll bool) ([]attendance.SessionResponse, error) {
	return f.historyFn(ctx, gymID, actorMemberID, canReadAll)
}

func TestHandler_Scan(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gymID := uuid.New().String()
	memberID := uuid.New().String()

	svc := &fakeService{
		scanFn: func(ctx context.Context, g, m string, req attendance.ScanRequest) (attendance.SessionOutcome, error) {
			assert.Equal(t, gymID, g)
			assert.Equal(t, memberID, m)
			assert.Equal(t, "GYM_1_2_abc", req.Code)
			return attendance.SessionOutcome{Action: "checked_in", SessionID: uuid.New().String()}, nil
		},
	}

	h := attendance.NewHandler(svc, attendance.NewLegacyToggler(), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("gym_id", gymID)
	c.Set("member_id", memberID)
	c.Request = httptest.NewRequest(http.MethodPost, "/checkins/scan", strings.NewReader(`{"code":"GYM_1_2_abc"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Scan(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "checked_in")
}

func TestHandler_Scan_RequiresMemberIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := attendance.NewHandler(&fakeService{}, attendance.NewLegacyToggler(), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("gym_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/checkins/scan", strings.NewReader(`{"code":"x"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Scan(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_Manual(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gymID := uuid.New().String()
	targetMember := uuid.New().String()

	svc := &fakeService{
		manualFn: func(ctx context.Context, g, staffUserID string, req attendance.ManualRequest) (attendance.SessionOutcome, error) {
			assert.Equal(t, targetMember, req.MemberID)
			return attendance.SessionOutcome{Action: "checked_out", SessionID: uuid.New().String()}, nil
		},
	}

	h := attendance.NewHandler(svc, attendance.NewLegacyToggler(), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("gym_id", gymID)
	c.Set("user_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/checkins/manual", strings.NewReader(`{"member_id":"`+targetMember+`"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Manual(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "checked_out")
}

func TestHandler_GetAll_Paginates(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		historyFn: func(ctx context.Context, gymID, actorMemberID string, canReadAll bool) ([]attendance.SessionResponse, error) {
			assert.True(t, canReadAll)
			return []attendance.SessionResponse{
				{ID: uuid.New().String()},
				{ID: uuid.New().String()},
				{ID: uuid.New().String()},
			}, nil
		},
	}

	h := attendance.NewHandler(svc, attendance.NewLegacyToggler(), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("gym_id", uuid.New().String())
	c.Set("role", "staff")
	c.Request = httptest.NewRequest(http.MethodGet, "/checkins?page=1&page_size=2", nil)
	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"meta\"")
	assert.Contains(t, w.Body.String(), "\"total\":3")
}

func TestHandler_LegacyToggle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := attendance.NewHandler(&fakeService{}, attendance.NewLegacyToggler(), nil)
	memberID := uuid.New().String()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("member_id", memberID)
	c.Request = httptest.NewRequest(http.MethodPost, "/legacy/checkin", nil)
	h.LegacyToggle(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"demo\":true")
	assert.Contains(t, w.Body.String(), "checked_in")
}
