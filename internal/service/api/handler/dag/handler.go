// Package dag DAG 헬스체크 실행과 이력 조회 엔드포인트를 처리합니다.
package dag

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/darkkaiser/dag-health-monitor/internal/model"
	apperrors "github.com/darkkaiser/dag-health-monitor/internal/pkg/errors"
	"github.com/darkkaiser/dag-health-monitor/internal/pkg/validator"
	"github.com/darkkaiser/dag-health-monitor/internal/service/api/constants"
	"github.com/darkkaiser/dag-health-monitor/internal/service/api/httputil"
	"github.com/darkkaiser/dag-health-monitor/internal/service/healthcheck"
	applog "github.com/darkkaiser/dag-health-monitor/pkg/log"
)

// HealthCheckRequest POST /api/dag/health-check 요청 본문
//
// nodes와 edges 필드는 모두 필수이지만 빈 배열은 허용합니다. 정의되지 않은 필드는 무시합니다.
// 노드는 id와 name만 필수이며, 빈 health_endpoint나 알 수 없는 노드를 가리키는 간선은 거부하지 않고 리포트에 반영합니다.
type HealthCheckRequest struct {
	Nodes []model.Node `json:"nodes" validate:"required,unique=ID,dive"`
	Edges []model.Edge `json:"edges" validate:"required"`
}

// Handler DAG 헬스체크 핸들러
type Handler struct {
	checker healthcheck.Checker
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(checker healthcheck.Checker) *Handler {
	if checker == nil {
		panic(constants.PanicMsgCheckerRequired)
	}
	return &Handler{checker: checker}
}

// HealthCheckHandler godoc
// @Summary DAG 헬스체크 실행
// @Description 요청한 의존성 그래프를 BFS 순서로 정렬하고 모든 노드의 헬스 엔드포인트를 동시에 확인합니다.
// @Description 노드별 타임아웃은 10초이며, 결과 리포트는 이력에 저장됩니다.
// @Description
// @Description 전체 상태:
// @Description - healthy: 모든 노드 정상
// @Description - unhealthy: 일부 노드 비정상
// @Description - critical: 모든 노드 비정상
// @Tags DAG
// @Accept json
// @Produce json
// @Param request body HealthCheckRequest true "의존성 그래프"
// @Success 200 {object} model.HealthReport "헬스체크 리포트"
// @Failure 400 {object} httputil.ErrorResponse "잘못된 요청"
// @Failure 500 {object} httputil.ErrorResponse "헬스체크 실행 실패"
// @Router /api/dag/health-check [post]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	var req HealthCheckRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge {
			return err
		}
		return httputil.NewBadRequestError(constants.ErrMsgInvalidJSON)
	}
	if err := validator.Get().Struct(&req); err != nil {
		return httputil.NewBadRequestError(validator.FormatValidationError(err))
	}

	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"nodes":     len(req.Nodes),
		"edges":     len(req.Edges),
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgDAGCheckRequested)

	r, err := h.checker.Check(c.Request().Context(), model.Graph{Nodes: req.Nodes, Edges: req.Edges})
	if err != nil {
		applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgDAGCheckFailed)
		return httputil.NewInternalServerError(err.Error())
	}

	return c.JSON(http.StatusOK, r)
}

// HistoryHandler godoc
// @Summary 헬스체크 이력 조회
// @Description 최근 헬스체크 리포트를 최대 100개까지 최신순으로 반환합니다.
// @Tags DAG
// @Produce json
// @Success 200 {array} model.HealthReport "헬스체크 리포트 목록"
// @Failure 500 {object} httputil.ErrorResponse "조회 실패"
// @Router /api/dag/history [get]
func (h *Handler) HistoryHandler(c echo.Context) error {
	reports, err := h.checker.History(c.Request().Context())
	if err != nil {
		applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgHistoryFailed)
		return httputil.NewInternalServerError(err.Error())
	}

	return c.JSON(http.StatusOK, reports)
}

// GetHandler godoc
// @Summary 헬스체크 리포트 단건 조회
// @Tags DAG
// @Produce json
// @Param id path string true "리포트 식별자 (dag_id)"
// @Success 200 {object} model.HealthReport "헬스체크 리포트"
// @Failure 404 {object} httputil.ErrorResponse "리포트 없음"
// @Failure 500 {object} httputil.ErrorResponse "조회 실패"
// @Router /api/dag/history/{id} [get]
func (h *Handler) GetHandler(c echo.Context) error {
	id := c.Param(constants.ParamID)

	r, err := h.checker.Get(c.Request().Context(), id)
	if err != nil {
		if apperrors.Is(err, apperrors.NotFound) {
			return httputil.NewNotFoundError(constants.ErrMsgRecordNotFound)
		}

		applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
			"dag_id": id,
			"error":  err,
		}).Error(constants.LogMsgHistoryFailed)
		return httputil.NewInternalServerError(err.Error())
	}

	return c.JSON(http.StatusOK, r)
}
