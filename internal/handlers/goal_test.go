package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/programmableapple/financialAdvisor/internal/dto"
	"github.com/programmableapple/financialAdvisor/internal/errs"
	"github.com/programmableapple/financialAdvisor/internal/models"
)

type stubGoalService struct {
	createGoal *models.Goal
	createErr  error
	listGoals  []*models.Goal
	listErr    error
	updateGoal *models.Goal
	updateErr  error
	deleteErr  error

	lastCreateReq dto.CreateGoalRequest
	lastUpdateID  string
	lastUpdateReq dto.UpdateGoalRequest
	lastDeleteID  string
}

func (s *stubGoalService) Create(_ context.Context, _ string, req dto.CreateGoalRequest) (*models.Goal, error) {
	s.lastCreateReq = req
	return s.createGoal, s.createErr
}

func (s *stubGoalService) List(_ context.Context, _ string) ([]*models.Goal, error) {
	return s.listGoals, s.listErr
}

func (s *stubGoalService) Update(_ context.Context, _, goalID string, req dto.UpdateGoalRequest) (*models.Goal, error) {
	s.lastUpdateID = goalID
	s.lastUpdateReq = req
	return s.updateGoal, s.updateErr
}

func (s *stubGoalService) Delete(_ context.Context, _, goalID string) error {
	s.lastDeleteID = goalID
	return s.deleteErr
}

func TestCreateGoal_Created(t *testing.T) {
	svc := &stubGoalService{createGoal: &models.Goal{GoalID: "g1"}}
	resp := &stubResponseHandler{}
	h := NewGoalHandlers(&Deps{ResponseHandler: resp, GoalSvc: svc})

	body := `{"name":"Vacation","targetAmount":2000,"targetDate":"2026-12-01T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/goals", strings.NewReader(body))
	req = withUID(req, "uid1")
	rr := httptest.NewRecorder()
	h.CreateGoal(rr, req)

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusCreated {
		t.Fatalf("expected WriteSuccess 201, got called=%v status=%d", resp.writeSuccessCalled, resp.writeSuccessStatus)
	}
	if svc.lastCreateReq.Name != "Vacation" {
		t.Errorf("unexpected name passed to service: %s", svc.lastCreateReq.Name)
	}
}

func TestListGoals_OKHandler(t *testing.T) {
	svc := &stubGoalService{listGoals: []*models.Goal{{GoalID: "g1"}}}
	resp := &stubResponseHandler{}
	h := NewGoalHandlers(&Deps{ResponseHandler: resp, GoalSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/goals", nil)
	req = withUID(req, "uid1")
	rr := httptest.NewRecorder()
	h.ListGoals(rr, req)

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatal("expected WriteSuccess 200")
	}
}

func TestUpdateGoal_AddFunds(t *testing.T) {
	svc := &stubGoalService{updateGoal: &models.Goal{GoalID: "g1", CurrentAmount: 450}}
	resp := &stubResponseHandler{}
	h := NewGoalHandlers(&Deps{ResponseHandler: resp, GoalSvc: svc})

	req := httptest.NewRequest(http.MethodPut, "/goals/g1", strings.NewReader(`{"addAmount":150}`))
	req = withUID(req, "uid1")
	req = withChiParam(req, "goalId", "g1")
	rr := httptest.NewRecorder()
	h.UpdateGoal(rr, req)

	if svc.lastUpdateID != "g1" {
		t.Errorf("expected goalId=g1, got %s", svc.lastUpdateID)
	}
	if svc.lastUpdateReq.AddAmount == nil || *svc.lastUpdateReq.AddAmount != 150 {
		t.Errorf("addAmount not decoded: %+v", svc.lastUpdateReq)
	}
	if !resp.writeSuccessCalled {
		t.Fatal("expected WriteSuccess")
	}
}

func TestDeleteGoal_NotFoundPassedThrough(t *testing.T) {
	svc := &stubGoalService{deleteErr: errs.NewNotFoundError("goal not found")}
	resp := &stubResponseHandler{}
	h := NewGoalHandlers(&Deps{ResponseHandler: resp, GoalSvc: svc})

	req := httptest.NewRequest(http.MethodDelete, "/goals/missing", nil)
	req = withUID(req, "uid1")
	req = withChiParam(req, "goalId", "missing")
	rr := httptest.NewRecorder()
	h.DeleteGoal(rr, req)

	if !resp.handleErrorCalled {
		t.Fatal("expected HandleError")
	}
}
