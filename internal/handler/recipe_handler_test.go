package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/s1amese2003/RecycleMind/internal/optimizer"
	"github.com/s1amese2003/RecycleMind/internal/repository"
	"github.com/s1amese2003/RecycleMind/internal/service"
	"github.com/s1amese2003/RecycleMind/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupRecipeHandlerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	engine := optimizer.NewEngine(optimizer.NewSimplexSolver(), optimizer.Options{})
	services := service.NewServices(repos, db, nil, engine, zap.NewNop())
	handlers := NewHandlers(services)

	r := testutil.SetupRouter()
	recipe := r.Group("/api/v1/recipe")
	recipe.GET("/materials", handlers.Recipe.ListMaterials)
	recipe.POST("/calculate", handlers.Recipe.Calculate)
	return r, db
}

func TestCalculateViaAPI(t *testing.T) {
	r, db := setupRecipeHandlerTest(t)
	testutil.SeedMaterial(t, db, "低硅废铝", map[string]float64{"Si": 8}, 100000, 2, 100)
	testutil.SeedMaterial(t, db, "高硅废铝", map[string]float64{"Si": 14}, 100000, 5, 100)

	body := map[string]interface{}{
		"requirements": map[string]interface{}{
			"elements": []map[string]interface{}{
				{"element": "Si", "min": 10, "max": 12},
			},
		},
	}
	w := testutil.DoRequest(r, http.MethodPost, "/api/v1/recipe/calculate", body)
	if w.Code != http.StatusOK {
		t.Fatalf("Calculate returned %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	recipe := data["recipe"].([]interface{})
	if len(recipe) != 2 {
		t.Errorf("Recipe items = %d, want 2", len(recipe))
	}
	if _, ok := data["totalCost"]; !ok {
		t.Error("Response missing totalCost")
	}
}

func TestCalculateInfeasibleViaAPI(t *testing.T) {
	r, db := setupRecipeHandlerTest(t)
	testutil.SeedMaterial(t, db, "低硅废铝", map[string]float64{"Si": 8}, 100000, 2, 100)

	body := map[string]interface{}{
		"requirements": map[string]interface{}{
			"elements": []map[string]interface{}{
				{"element": "Si", "min": 20, "max": 25},
			},
		},
	}
	w := testutil.DoRequest(r, http.MethodPost, "/api/v1/recipe/calculate", body)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Infeasible calculate returned %d, want 422", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if code, _ := resp["code"].(float64); int(code) != 50002 {
		t.Errorf("code = %v, want 50002", resp["code"])
	}
}

func TestCalculateEmptyRequirementViaAPI(t *testing.T) {
	r, db := setupRecipeHandlerTest(t)
	testutil.SeedMaterial(t, db, "废铝", map[string]float64{"Si": 8}, 1000, 2, 100)

	w := testutil.DoRequest(r, http.MethodPost, "/api/v1/recipe/calculate",
		map[string]interface{}{"requirements": map[string]interface{}{"elements": []interface{}{}}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Empty requirement returned %d, want 400", w.Code)
	}
}

func TestListMaterialsViaAPI(t *testing.T) {
	r, db := setupRecipeHandlerTest(t)
	testutil.SeedMaterial(t, db, "废铝", map[string]float64{"Si": 8}, 1000, 2, 100)

	w := testutil.DoRequest(r, http.MethodGet, "/api/v1/recipe/materials", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("ListMaterials returned %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if total, _ := data["total"].(float64); int(total) != 1 {
		t.Errorf("total = %v, want 1", data["total"])
	}
}
