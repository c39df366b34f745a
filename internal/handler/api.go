package handler

import (
	"strings"
	"time"

	"github.com/youthadmin/internal/service"
	"github.com/youthadmin/internal/store"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	members     *service.MemberService
	visitations *service.VisitationService
	dashboard   *service.DashboardService
	visitStats  *service.VisitationStatsService
	media       *service.MediaService
	uploadURL   string
}

// NewAPI constructs a handler set over one record store. now defaults to time.Now
// and drives authored timestamps, the recency window and upload file names.
func NewAPI(st store.Store, uploadDir, uploadURL string, now func() time.Time) *API {
	if now == nil {
		now = time.Now
	}
	registerValidators()

	return &API{
		members:     service.NewMemberService(st),
		visitations: service.NewVisitationService(st),
		dashboard:   service.NewDashboardService(st),
		visitStats:  service.NewVisitationStatsService(st, now),
		media:       service.NewMediaService(uploadDir, now),
		uploadURL:   strings.TrimRight(uploadURL, "/"),
	}
}
