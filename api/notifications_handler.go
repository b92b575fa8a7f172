package api

import (
	"net/http"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/poller"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/utils"
)

// NotificationsResponse is the back-office notification bell
type NotificationsResponse struct {
	Notifications []poller.Notification `json:"notifications"`
	Counts        *poller.OrderCounts   `json:"counts,omitempty"`
}

// NotificationsHandler returns recent new-order notifications and order counts
func (h *Handler) NotificationsHandler(w http.ResponseWriter, r *http.Request) {
	resp := NotificationsResponse{Notifications: []poller.Notification{}}
	if h.Notifier != nil {
		resp.Notifications = h.Notifier.Recent()
	}
	if h.Counter != nil {
		counts := h.Counter.Snapshot()
		resp.Counts = &counts
	}
	utils.RespondJSON(w, http.StatusOK, resp)
}
