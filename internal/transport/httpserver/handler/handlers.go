package handler

import (
	petsdomain "bokumono-go/internal/domain/pets"
	profiledomain "bokumono-go/internal/domain/profile"
	schedulesdomain "bokumono-go/internal/domain/schedules"
	"bokumono-go/pkg/logger"
)

type Handlers struct {
	Pets      *petsdomain.Service
	Schedules *schedulesdomain.Service
	Profile   *profiledomain.Service
	log       logger.Logger
}

func New(pets *petsdomain.Service, schedules *schedulesdomain.Service, profile *profiledomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Pets:      pets,
		Schedules: schedules,
		Profile:   profile,
		log:       log,
	}
}
