package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/s1amese2003/RecycleMind/internal/model/entity"
	"github.com/s1amese2003/RecycleMind/internal/optimizer"
	"github.com/s1amese2003/RecycleMind/internal/repository"
	"github.com/s1amese2003/RecycleMind/internal/service"
	"github.com/s1amese2003/RecycleMind/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupProductionHandlerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	engine := optimizer.NewEngine(optimizer.NewSimplexSolver(), optimizer.Options{})
	services := service.NewServices(repos, db, nil, engine, zap.NewNop())
	handlers := NewHandlers(services)

	r := testutil.SetupRouter()
	v1 := r.Group("/api/v1")
	production := v1.Group("/production")
	production.GET("/plans", handlers.Production.List)
	production.POST("/plans", handlers.Production.Submit)
	production.GET("/plans/:id", handlers.Production.Get)
	production.POST("/plans/:id/approve", handlers.Production.Approve)
	production.PUT("/plans/:id/complete", handlers.Production.Complete)
	production.GET("/records", handlers.Production.ListRecords)
	return r, db
}

func submitViaAPI(t *testing.T, r *gin.Engine, db *gorm.DB) string {
	t.Helper()
	a := testutil.SeedMaterial(t, db, "低硅废铝", map[string]float64{"Si": 8}, 1000, 2, 100)
	b := testutil.SeedMaterial(t, db, "高硅废铝", map[string]float64{"Si": 14}, 500, 5, 100)

	body := map[string]interface{}{
		"product_name":  "ADC12铝锭",
		"target_amount": 1000,
		"recipe": []map[string]interface{}{
			{"material_id": a.ID, "percentage": 60},
			{"material_id": b.ID, "percentage": 40},
		},
		"operator": "张三",
	}
	w := testutil.DoRequest(r, http.MethodPost, "/api/v1/production/plans", body)
	if w.Code != http.StatusOK {
		t.Fatalf("Submit returned %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	return data["plan_id"].(string)
}

func TestProductionLifecycleViaAPI(t *testing.T) {
	r, db := setupProductionHandlerTest(t)
	planID := submitViaAPI(t, r, db)

	// 审批
	w := testutil.DoRequest(r, http.MethodPost,
		fmt.Sprintf("/api/v1/production/plans/%s/approve", planID),
		map[string]interface{}{"approver": "李经理"})
	if w.Code != http.StatusOK {
		t.Fatalf("Approve returned %d: %s", w.Code, w.Body.String())
	}

	// 重复审批冲突
	w = testutil.DoRequest(r, http.MethodPost,
		fmt.Sprintf("/api/v1/production/plans/%s/approve", planID),
		map[string]interface{}{"approver": "王经理"})
	if w.Code != http.StatusConflict {
		t.Fatalf("Second approve returned %d, want 409", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if code, _ := resp["code"].(float64); int(code) != 40901 {
		t.Errorf("Second approve code = %v, want 40901", resp["code"])
	}

	// 完工
	w = testutil.DoRequest(r, http.MethodPut,
		fmt.Sprintf("/api/v1/production/plans/%s/complete", planID),
		map[string]interface{}{"actual_amount": 950, "role": "manager", "operator": "张三"})
	if w.Code != http.StatusOK {
		t.Fatalf("Complete returned %d: %s", w.Code, w.Body.String())
	}

	// 详情状态
	w = testutil.DoRequest(r, http.MethodGet, "/api/v1/production/plans/"+planID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Get returned %d", w.Code)
	}
	resp = testutil.ParseResponse(w)
	plan := resp["data"].(map[string]interface{})
	if plan["status"] != entity.PlanStatusCompleted {
		t.Errorf("Plan status = %v, want COMPLETED", plan["status"])
	}

	// 生产记录
	w = testutil.DoRequest(r, http.MethodGet, "/api/v1/production/records", nil)
	resp = testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if total, _ := data["total"].(float64); int(total) != 1 {
		t.Errorf("Records total = %v, want 1", data["total"])
	}
}

func TestApproveUnknownPlanViaAPI(t *testing.T) {
	r, _ := setupProductionHandlerTest(t)

	w := testutil.DoRequest(r, http.MethodPost,
		"/api/v1/production/plans/no-such-plan/approve",
		map[string]interface{}{"approver": "李经理"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("Approve unknown plan returned %d, want 404", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if code, _ := resp["code"].(float64); int(code) != 10002 {
		t.Errorf("code = %v, want 10002", resp["code"])
	}
}

func TestCompleteWithoutRoleViaAPI(t *testing.T) {
	r, db := setupProductionHandlerTest(t)
	planID := submitViaAPI(t, r, db)

	w := testutil.DoRequest(r, http.MethodPost,
		fmt.Sprintf("/api/v1/production/plans/%s/approve", planID),
		map[string]interface{}{"approver": "李经理"})
	if w.Code != http.StatusOK {
		t.Fatalf("Approve returned %d", w.Code)
	}

	w = testutil.DoRequest(r, http.MethodPut,
		fmt.Sprintf("/api/v1/production/plans/%s/complete", planID),
		map[string]interface{}{"actual_amount": 950, "role": "operator"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("Complete with operator role returned %d, want 403", w.Code)
	}
}

func TestSubmitValidationViaAPI(t *testing.T) {
	r, _ := setupProductionHandlerTest(t)

	w := testutil.DoRequest(r, http.MethodPost, "/api/v1/production/plans",
		map[string]interface{}{"product_name": "ADC12铝锭"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Submit without recipe returned %d, want 400", w.Code)
	}
}
