package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	classificationrepo "github.com/yungbote/tubesort-backend/internal/data/repos/classification"
	types "github.com/yungbote/tubesort-backend/internal/domain"
	"github.com/yungbote/tubesort-backend/internal/http/middleware"
	"github.com/yungbote/tubesort-backend/internal/pkg/logger"
	"github.com/yungbote/tubesort-backend/internal/services"
)

type ClassificationHandler struct {
	log                   *logger.Logger
	classificationService services.ClassificationService
}

func NewClassificationHandler(baseLog *logger.Logger, classificationService services.ClassificationService) *ClassificationHandler {
	handlerLog := baseLog.With("handler", "ClassificationHandler")
	return &ClassificationHandler{log: handlerLog, classificationService: classificationService}
}

type classifyRequest struct {
	VideoID    uint    `json:"video_id" binding:"required"`
	PlaylistID uint    `json:"playlist_id" binding:"required"`
	Confidence float64 `json:"confidence"`
}

func (ch *ClassificationHandler) Classify(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := ch.classificationService.Classify(c.Request.Context(), user, req.VideoID, req.PlaylistID, req.Confidence)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondCreated(c, created)
}

func (ch *ClassificationHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	classification, err := ch.classificationService.GetClassification(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	if classification == nil {
		RespondError(c, http.StatusNotFound, "not_found", nil)
		return
	}
	RespondOK(c, classification)
}

// ListMine returns the caller's classifications, optionally narrowed by
// ?status=.
func (ch *ClassificationHandler) ListMine(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	skip, limit := pagination(c)
	if status := c.Query("status"); status != "" {
		rows, err := ch.classificationService.ListByStatus(c.Request.Context(), status, skip, limit)
		if err != nil {
			RespondAppError(c, err)
			return
		}
		mine := make([]*types.Classification, 0, len(rows))
		for _, row := range rows {
			if row.UserID == user.ID {
				mine = append(mine, row)
			}
		}
		RespondOK(c, mine)
		return
	}
	rows, err := ch.classificationService.ListByUser(c.Request.Context(), user.ID, skip, limit)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, rows)
}

type updateStatusRequest struct {
	Status     string   `json:"status" binding:"required"`
	Confidence *float64 `json:"confidence"`
}

func (ch *ClassificationHandler) UpdateStatus(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, okID := uintParam(c, "id")
	if !okID {
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	updated, err := ch.classificationService.UpdateStatus(c.Request.Context(), user, id, req.Status, req.Confidence)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, updated)
}

func (ch *ClassificationHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, okID := uintParam(c, "id")
	if !okID {
		return
	}
	if err := ch.classificationService.Unclassify(c.Request.Context(), user, id); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondNoContent(c)
}

type createRuleRequest struct {
	PlaylistID uint   `json:"playlist_id" binding:"required"`
	RuleType   string `json:"rule_type" binding:"required"`
	RuleValue  string `json:"rule_value" binding:"required"`
	Priority   int    `json:"priority"`
}

func (ch *ClassificationHandler) CreateRule(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req createRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := ch.classificationService.CreateRule(c.Request.Context(), &types.ClassificationRule{
		UserID:     user.ID,
		PlaylistID: req.PlaylistID,
		RuleType:   req.RuleType,
		RuleValue:  req.RuleValue,
		Priority:   req.Priority,
	})
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondCreated(c, created)
}

type updateRuleRequest struct {
	RuleType  *string `json:"rule_type"`
	RuleValue *string `json:"rule_value"`
	Priority  *int    `json:"priority"`
}

func (ch *ClassificationHandler) UpdateRule(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, okID := uintParam(c, "id")
	if !okID {
		return
	}
	var req updateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	updated, err := ch.classificationService.UpdateRule(c.Request.Context(), user, id, classificationrepo.RuleUpdate{
		RuleType:  req.RuleType,
		RuleValue: req.RuleValue,
		Priority:  req.Priority,
	})
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, updated)
}

func (ch *ClassificationHandler) DeleteRule(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, okID := uintParam(c, "id")
	if !okID {
		return
	}
	if _, err := ch.classificationService.DeleteRule(c.Request.Context(), user, id); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondNoContent(c)
}

// ListRules returns the caller's rules for one playlist in evaluation order.
func (ch *ClassificationHandler) ListRules(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	playlistID, okID := uintParam(c, "id")
	if !okID {
		return
	}
	rules, err := ch.classificationService.RulesInOrder(c.Request.Context(), user.ID, playlistID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, rules)
}

// History returns the caller's audit trail; ?video_id=&playlist_id= narrows
// it to one pair.
func (ch *ClassificationHandler) History(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	videoID := c.Query("video_id")
	playlistID := c.Query("playlist_id")
	if videoID != "" && playlistID != "" {
		vid, err1 := parseUintQuery(videoID)
		pid, err2 := parseUintQuery(playlistID)
		if err1 != nil || err2 != nil {
			RespondError(c, http.StatusBadRequest, "invalid_param", nil)
			return
		}
		trail, err := ch.classificationService.HistoryForPair(c.Request.Context(), vid, pid)
		if err != nil {
			RespondAppError(c, err)
			return
		}
		RespondOK(c, trail)
		return
	}
	skip, limit := pagination(c)
	trail, err := ch.classificationService.HistoryForUser(c.Request.Context(), user.ID, skip, limit)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, trail)
}
