package booking

import "github.com/BruksfildServices01/barbershop-booking/internal/httperr"

var (
	ErrServiceNotFound = httperr.ErrBusiness("service_not_found")
	ErrPastTime        = httperr.ErrBusiness("past_time")
	ErrTimeConflict    = httperr.ErrBusiness("time_conflict")
	ErrSlotNotOffered  = httperr.ErrBusiness("invalid_slot")
)
