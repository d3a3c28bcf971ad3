package api

import (
	"fmt"
	"net/http"
	"time"
)

// exportBookings streams the full bookings report as an xlsx attachment.
func (s *Server) exportBookings(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("bookings_%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := s.bookings.ExportBookings(r.Context(), w); err != nil {
		s.log.Error().Err(err).Msg("failed to export bookings")
		writeError(w, http.StatusInternalServerError, "export failed")
	}
}
