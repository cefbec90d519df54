package handler

import (
	"net/http"
	"strings"
	"time"

	"sst_portal_backend/internal/onboarding/service"
	"sst_portal_backend/internal/onboarding/transport"
	"sst_portal_backend/platform/config"
	"sst_portal_backend/platform/httpkit"
	"sst_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionTokenHeader carries the session token for clients that do not
// keep cookies. Responses that mint a new session set it too.
const SessionTokenHeader = "X-Session-Token"

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgNoSession        = "session required"
)

type Handler struct {
	svc    *service.Service
	cookie config.CookieConfig
	val    *validator.Validator
}

func New(svc *service.Service, cookie config.CookieConfig, val *validator.Validator) *Handler {
	return &Handler{svc: svc, cookie: cookie, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/session", h.GetSession)
	rg.POST("/intake", h.SubmitIntake)
	rg.GET("/diagnosis", h.GetDiagnosis)
	rg.POST("/accept", h.AcceptProposal)
	rg.GET("/signup", h.SignupScreen)
	rg.POST("/logout", h.Logout)
}

// Session resolves the caller's session from the Authorization bearer, the
// session header or the cookie. Callers without a live session get a new
// anonymous one.
func (h *Handler) Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id, ok := h.svc.Resolve(ctx, h.tokenFrom(c))
		if !ok {
			created, err := h.svc.Start(ctx)
			if httpkit.HandleError(c, err) {
				return
			}
			h.issue(c, created.Token)
			id = created.Session.SessionID
		}
		c.Set(httpkit.ContextSessionIDKey, id)
		c.Next()
	}
}

// RequireAccount gates a portal screen. It must run after Session.
func (h *Handler) RequireAccount(screen string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			httpkit.Error(c, http.StatusUnauthorized, msgNoSession, nil)
			c.Abort()
			return
		}

		account, err := h.svc.Authorize(c.Request.Context(), id, screen)
		if httpkit.HandleError(c, err) {
			return
		}

		httpkit.SetIdentity(c, id, httpkit.AccountInfo{
			ID:          account.ID,
			CompanyName: account.CompanyName,
			TaxID:       account.TaxID,
			Segment:     string(account.Segment),
			Headcount:   string(account.HeadcountBand),
			ContactName: account.ContactName,
			Email:       account.Email,
		})
		c.Next()
	}
}

// CreateSession always starts a fresh anonymous session.
func (h *Handler) CreateSession(c *gin.Context) {
	resp, err := h.svc.Start(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	h.issue(c, resp.Token)
	httpkit.JSON(c, http.StatusCreated, resp)
}

func (h *Handler) GetSession(c *gin.Context) {
	id, ok := h.mustSession(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) SubmitIntake(c *gin.Context) {
	id, ok := h.mustSession(c)
	if !ok {
		return
	}

	var req transport.IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}

	resp, err := h.svc.SubmitIntake(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	if resp.Pending {
		httpkit.JSON(c, http.StatusAccepted, resp)
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) GetDiagnosis(c *gin.Context) {
	id, ok := h.mustSession(c)
	if !ok {
		return
	}
	resp, err := h.svc.Diagnosis(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	if resp.Pending {
		httpkit.JSON(c, http.StatusAccepted, resp)
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) AcceptProposal(c *gin.Context) {
	id, ok := h.mustSession(c)
	if !ok {
		return
	}
	resp, err := h.svc.AcceptProposal(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) SignupScreen(c *gin.Context) {
	id, ok := h.mustSession(c)
	if !ok {
		return
	}
	resp, err := h.svc.SignupScreen(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) SignUp(c *gin.Context) {
	id, ok := h.mustSession(c)
	if !ok {
		return
	}

	var req transport.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}

	resp, err := h.svc.SignUp(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, resp)
}

func (h *Handler) Login(c *gin.Context) {
	id, ok := h.mustSession(c)
	if !ok {
		return
	}

	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) Logout(c *gin.Context) {
	id, ok := h.mustSession(c)
	if !ok {
		return
	}
	resp, err := h.svc.Logout(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	h.issue(c, resp.Token)
	httpkit.OK(c, resp)
}

func (h *Handler) mustSession(c *gin.Context) (uuid.UUID, bool) {
	id, ok := sessionID(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, msgNoSession, nil)
		return uuid.Nil, false
	}
	return id, true
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := c.Get(httpkit.ContextSessionIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := raw.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

func (h *Handler) tokenFrom(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		if token, found := strings.CutPrefix(auth, "Bearer "); found {
			return strings.TrimSpace(token)
		}
	}
	if token := c.GetHeader(SessionTokenHeader); token != "" {
		return token
	}
	if cookie, err := c.Cookie(h.cookie.GetSessionCookieName()); err == nil {
		return cookie
	}
	return ""
}

func (h *Handler) issue(c *gin.Context, token string) {
	c.Header(SessionTokenHeader, token)
	c.SetSameSite(h.cookie.GetSessionCookieSameSite())
	c.SetCookie(
		h.cookie.GetSessionCookieName(),
		token,
		int(h.cookie.GetSessionTTL()/time.Second),
		"/",
		h.cookie.GetSessionCookieDomain(),
		h.cookie.GetSessionCookieSecure(),
		true,
	)
}
