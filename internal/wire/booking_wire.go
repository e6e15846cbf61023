package wire

import (
	"net/http"

	"sports-club/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, protect func(http.Handler) http.Handler) {
	r.Route("/bookings", func(r chi.Router) {
		r.Use(protect)

		r.Post("/", bookingHandler.CreateBooking)
		r.Get("/", bookingHandler.ListBookings)

		// static segments before the catch-all params
		r.Get("/status", bookingHandler.GetPendingBookings)
		r.Get("/id/{id}", bookingHandler.GetBookingByID)
		r.Get("/approved/{email}", bookingHandler.GetApprovedBookings)
		r.Get("/{email}", bookingHandler.GetBookingsByEmail)

		r.Delete("/pending/email/{id}", bookingHandler.DeletePendingBooking)
		r.Delete("/{id}", bookingHandler.DeleteBooking)
		r.Patch("/{id}/status", bookingHandler.UpdateStatus)
	})
}
