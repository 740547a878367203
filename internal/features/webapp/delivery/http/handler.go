package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "miniapp-market-backend/internal/common/errors"
	"miniapp-market-backend/internal/common/logger"
	"miniapp-market-backend/internal/features/auth/initdata"
	productModels "miniapp-market-backend/internal/features/product/models"
	productService "miniapp-market-backend/internal/features/product/service"
	profileService "miniapp-market-backend/internal/features/profile/service"
	referralService "miniapp-market-backend/internal/features/referral/service"
)

// Action — закрытый набор операций. Разбор строки отвергает всё остальное,
// поэтому switch по Action исчерпывающий.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionStats  Action = "stats"
)

// ParseAction validates the wire action string against the closed set.
func ParseAction(raw string) (Action, error) {
	switch a := Action(raw); a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionStats:
		return a, nil
	default:
		return "", apperrors.NewUnsupportedActionError(raw)
	}
}

// ActionRequest is the single request shape every call carries.
type ActionRequest struct {
	InitData  string                      `json:"initData"`
	Action    string                      `json:"action"`
	ProductID string                      `json:"productId,omitempty"`
	Product   *productModels.ProductInput `json:"product,omitempty"`
}

// WebAppHandler is the one action surface of the gateway. The pipeline is
// fixed: parse request, verify init data, resolve profile, dispatch. Each
// stage short-circuits on failure.
type WebAppHandler struct {
	verifier  *initdata.Verifier
	profiles  profileService.ProfileService
	products  productService.ProductService
	referrals referralService.ReferralService
}

func NewWebAppHandler(
	verifier *initdata.Verifier,
	profiles profileService.ProfileService,
	products productService.ProductService,
	referrals referralService.ReferralService,
) *WebAppHandler {
	return &WebAppHandler{
		verifier:  verifier,
		profiles:  profiles,
		products:  products,
		referrals: referrals,
	}
}

func (h *WebAppHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/actions", h.Dispatch)
}

// @Summary Execute a Mini App action
// @Description Verifies Telegram initData, resolves the profile and runs one of the closed set of actions: create, update, delete (products) or stats (referrals).
// @Tags webapp
// @Accept json
// @Produce json
// @Param request body ActionRequest true "Action descriptor with initData"
// @Success 200 {object} map[string]interface{} "Action result"
// @Failure 400 {object} map[string]string "Malformed body or unsupported action"
// @Failure 401 {object} map[string]string "Invalid initData"
// @Failure 403 {object} map[string]string "Premium subscription required"
// @Failure 404 {object} map[string]string "Profile or product not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /actions [post]
func (h *WebAppHandler) Dispatch(c *gin.Context) {
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	user, err := h.verifier.Verify(req.InitData)
	if err != nil {
		// Единый ответ на любой отказ верификации; причина только в логе.
		logger.Debug().Err(err).Msg("initData rejected")
		_ = c.Error(apperrors.NewInvalidInitDataError(err))
		return
	}

	profile, err := h.profiles.Resolve(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	action, err := ParseAction(req.Action)
	if err != nil {
		_ = c.Error(err)
		return
	}

	switch action {
	case ActionCreate:
		if req.Product == nil {
			_ = c.Error(apperrors.New(apperrors.ErrCodeBadRequest, "Product payload required"))
			return
		}
		product, err := h.products.Create(c.Request.Context(), profile, req.Product)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": product})

	case ActionUpdate:
		if req.Product == nil || req.ProductID == "" {
			_ = c.Error(apperrors.New(apperrors.ErrCodeBadRequest, "Product payload and productId required"))
			return
		}
		product, err := h.products.Update(c.Request.Context(), profile, req.ProductID, req.Product)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": product})

	case ActionDelete:
		if req.ProductID == "" {
			_ = c.Error(apperrors.New(apperrors.ErrCodeBadRequest, "productId required"))
			return
		}
		if err := h.products.Delete(c.Request.Context(), profile, req.ProductID); err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})

	case ActionStats:
		stats, err := h.referrals.Stats(c.Request.Context(), profile)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
