package api

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rawblock/blackjack-engine/internal/engine"
	"github.com/rawblock/blackjack-engine/internal/store"
)

// APIHandler wires the decision engine, session store, and websocket hub
// into the HTTP surface (§6 External Interfaces, Module L).
type APIHandler struct {
	eng      *engine.Engine
	sessions *store.Store
	audit    *store.AuditStore // nil when no DATABASE_URL is configured
	wsHub    *Hub
}

// SetupRouter builds the Gin router exposing the decision service. audit
// may be nil — auditing is a best-effort side channel, never load-bearing
// for a decision response.
func SetupRouter(eng *engine.Engine, sessions *store.Store, audit *store.AuditStore, wsHub *Hub) *gin.Engine {
	r := gin.Default()

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowedOrigins == "" || allowedOrigins == "*" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowed := range strings.Split(allowedOrigins, ",") {
				if strings.TrimSpace(allowed) == origin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					break
				}
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	handler := &APIHandler{eng: eng, sessions: sessions, audit: audit, wsHub: wsHub}

	pub := r.Group("/")
	{
		pub.GET("health", handler.handleHealth)
		pub.GET("version", handler.handleVersion)
		pub.GET("stream", wsHub.Subscribe)
	}

	v1 := r.Group("/v1")
	v1.Use(AuthMiddleware())
	v1.Use(NewRateLimiter(120, 20).Middleware())
	{
		v1.POST("/game/start", handler.handleGameStart)
		v1.POST("/game/end", handler.handleGameEnd)
		v1.POST("/counts/apply", handler.handleCountsApply)
		v1.POST("/decision", handler.handleDecision)
		v1.POST("/insurance", handler.handleInsurance)
	}

	return r
}

func (h *APIHandler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *APIHandler) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"api":     "1.0.0",
		"backend": "exact-composition",
	})
}

// handleGameStart implements POST /v1/game/start (§6).
func (h *APIHandler) handleGameStart(c *gin.Context) {
	var req struct {
		NumDecks int         `json:"num_decks"`
		Rules    wireRules   `json:"rules" binding:"required"`
		ShoeMode wireShoeMode `json:"shoe_mode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "detail": err.Error()})
		return
	}
	if req.NumDecks <= 0 {
		req.NumDecks = 8
	}

	rules := req.Rules.toEngineRules()
	session := h.sessions.Start(req.NumDecks, rules)

	c.JSON(http.StatusOK, gin.H{
		"game_key": session.Key,
		"rules":    req.Rules,
		"shoe": gin.H{
			"num_decks":       session.NumDecks,
			"remaining_cards": session.Remaining(),
			"counts_hash":     session.CountsHash(),
		},
	})
}

// handleGameEnd implements POST /v1/game/end (§6).
func (h *APIHandler) handleGameEnd(c *gin.Context) {
	var req struct {
		GameKey string `json:"game_key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "detail": err.Error()})
		return
	}
	h.sessions.End(req.GameKey)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// handleCountsApply implements POST /v1/counts/apply (§6, §8 S6).
func (h *APIHandler) handleCountsApply(c *gin.Context) {
	var req struct {
		GameKey string   `json:"game_key" binding:"required"`
		Cards   []string `json:"cards" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_card_symbol", "detail": err.Error()})
		return
	}

	ranks, err := engine.ParseRanks(req.Cards)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_card_symbol", "detail": err.Error()})
		return
	}

	session, err := h.sessions.ApplyCards(req.GameKey, ranks)
	if err != nil {
		switch err {
		case store.ErrUnknownSession:
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown_game_key"})
		default:
			c.JSON(http.StatusConflict, gin.H{"error": "insufficient_cards", "detail": err.Error()})
		}
		return
	}

	rem := session.Remaining()
	c.JSON(http.StatusOK, gin.H{
		"ok":              true,
		"remaining_cards": rem,
		"counts_hash":     session.CountsHash(),
		"penetration": gin.H{
			"remaining": rem,
			"initial":   session.Initial,
			"ratio":     float64(rem) / float64(session.Initial),
		},
	})
}

// handleDecision implements POST /v1/decision (§6, the primary external
// call): looks up the session, parses the hand, and runs Engine.Decide.
func (h *APIHandler) handleDecision(c *gin.Context) {
	var req struct {
		GameKey  string `json:"game_key" binding:"required"`
		DealerUp string `json:"dealer_up" binding:"required"`
		Hand     struct {
			Cards        []string `json:"cards" binding:"required"`
			CanDouble    bool     `json:"can_double"`
			CanSplit     bool     `json:"can_split"`
			CanSurrender bool     `json:"can_surrender"`
		} `json:"hand" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_card_symbol", "detail": err.Error()})
		return
	}

	session, err := h.sessions.Get(req.GameKey)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_game_key"})
		return
	}

	up, err := engine.ParseRank(req.DealerUp)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_card_symbol", "detail": err.Error()})
		return
	}
	cards, err := engine.ParseRanks(req.Hand.Cards)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_card_symbol", "detail": err.Error()})
		return
	}

	elig := engine.Eligibility{
		CanDouble:    req.Hand.CanDouble,
		CanSplit:     req.Hand.CanSplit,
		CanSurrender: req.Hand.CanSurrender,
	}

	decision, err := h.eng.Decide(cards, up, session.Counts, elig, session.Rules)
	if err != nil {
		code := "bad_counts"
		if errors.Is(err, engine.ErrEmptyHand) {
			code = "empty_hand"
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": code, "detail": err.Error()})
		return
	}

	if h.audit != nil {
		go h.audit.RecordDecision(c.Request.Context(), session.Key, req.DealerUp, strings.Join(req.Hand.Cards, ""), string(decision.Action), decision.EVStand, decision.EVHit, session.CountsHash())
	}
	if h.wsHub != nil {
		h.wsHub.Broadcast([]byte(`{"type":"decision","game_key":"` + session.Key + `","action":"` + string(decision.Action) + `"}`))
	}

	c.JSON(http.StatusOK, gin.H{
		"action": decision.Action,
		"evs": gin.H{
			"stand":     decision.EVStand,
			"hit":       decision.EVHit,
			"double":    decision.EVDouble,
			"split":     decision.EVSplit,
			"surrender": decision.EVSurrender,
		},
		"meta": gin.H{
			"conditioning":         decision.Conditioning,
			"p_bj":                 decision.DealerBJProb,
			"double_ev_convention": "per_stake",
		},
	})
}

// handleInsurance implements the insurance query (§6 "Core call 2", §8
// S2): recommendation, both EV conventions, the dealer-BJ probability
// driving them, and whether the held hand is the even-money-equivalent
// {A,T}.
func (h *APIHandler) handleInsurance(c *gin.Context) {
	var req struct {
		GameKey  string   `json:"game_key" binding:"required"`
		DealerUp string   `json:"dealer_up" binding:"required"`
		Cards    []string `json:"cards"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "detail": err.Error()})
		return
	}

	session, err := h.sessions.Get(req.GameKey)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_game_key"})
		return
	}
	up, err := engine.ParseRank(req.DealerUp)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_card_symbol", "detail": err.Error()})
		return
	}
	cards, err := engine.ParseRanks(req.Cards)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_card_symbol", "detail": err.Error()})
		return
	}

	result, err := h.eng.EvaluateInsurance(up, session.Counts, cards)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dealer_up_not_ace", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendation":        result.Recommendation,
		"ev_per_original":       result.EVPerOriginal,
		"ev_per_insurance":      result.EVPerInsurance,
		"p_bj":                  result.PBJ,
		"break_even_p":          result.BreakEvenP,
		"even_money_equivalent": result.EvenMoneyEquivalent,
	})
}

// wireRules mirrors the reference service's request schema for table
// rules, translated to engine.Rules at the boundary.
type wireRules struct {
	H17           bool    `json:"h17"`
	BJPayout      float64 `json:"bj_payout"`
	LateSurrender bool    `json:"late_surrender"`
	DAS           bool    `json:"das"`
	MaxSplits     int     `json:"max_splits"`
	SplitAcesOne  bool    `json:"split_aces_one"`
	PeekRule      string  `json:"peek_rule"`
}

type wireShoeMode struct {
	Type string `json:"type"`
}

func (w wireRules) toEngineRules() engine.Rules {
	rules := engine.DefaultRules()
	rules.H17 = w.H17
	if w.BJPayout > 0 {
		rules.BJPayout = w.BJPayout
	}
	rules.DAS = w.DAS
	if w.MaxSplits > 0 {
		rules.MaxSplits = w.MaxSplits
	}
	rules.SplitAcesOne = w.SplitAcesOne
	if strings.EqualFold(w.PeekRule, "EU") {
		rules.PeekRule = engine.EU
	} else {
		rules.PeekRule = engine.US
	}
	return rules
}
