package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRewardsHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/rewards", rewardsHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/rewards?subtotal=1499.00", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Rewards struct {
			UnlockedTier  int   `json:"unlockedTier"`
			DiscountCents int64 `json:"discountCents"`
			FreeGift      bool  `json:"freeGift"`
		} `json:"rewards"`
		DiscountCode    string          `json:"discountCode"`
		Milestones      json.RawMessage `json:"milestones"`
		ProgressPercent int             `json:"progressPercent"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Rewards.UnlockedTier != 3 || !body.Rewards.FreeGift || body.Rewards.DiscountCents != 10000 {
		t.Fatalf("unexpected rewards %+v", body.Rewards)
	}
	if body.DiscountCode != "COD100" || body.ProgressPercent != 100 {
		t.Fatalf("unexpected derived fields %+v", body)
	}

	var milestones []struct {
		ThresholdCents int64 `json:"thresholdCents"`
	}
	if err := json.Unmarshal(body.Milestones, &milestones); err != nil {
		t.Fatalf("decode milestones: %v", err)
	}
	if len(milestones) != 3 || milestones[0].ThresholdCents != 49900 {
		t.Fatalf("unexpected milestones %+v", milestones)
	}
}

func TestRewardsHandlerBadSubtotal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/rewards", rewardsHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/rewards?subtotal=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
