package service

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/poinet/profiler-backend-go/internal/correlate"
	"github.com/poinet/profiler-backend-go/internal/models"
	"github.com/poinet/profiler-backend-go/internal/repository"
	"github.com/poinet/profiler-backend-go/internal/spatial"
)

// ErrPersonNotFound reports a profile request for an id with no identity
// record. Callers can tell it apart from a data-access failure.
var ErrPersonNotFound = errors.New("person not found")

// ProfileService builds the full linked-entity profile for one person:
// identity and belongings, then every correlation against the GPS trail.
type ProfileService struct {
	people     *repository.PersonRepository
	trail      *repository.TrailRepository
	businesses *repository.BusinessRepository
	events     *repository.EventRepository
	crimes     *repository.CrimeRepository
	relations  *repository.RelationRepository
	cfg        correlate.Config
}

// NewProfileService creates a new profile service
func NewProfileService(
	people *repository.PersonRepository,
	trail *repository.TrailRepository,
	businesses *repository.BusinessRepository,
	events *repository.EventRepository,
	crimes *repository.CrimeRepository,
	relations *repository.RelationRepository,
	cfg correlate.Config,
) *ProfileService {
	return &ProfileService{
		people:     people,
		trail:      trail,
		businesses: businesses,
		events:     events,
		crimes:     crimes,
		relations:  relations,
		cfg:        cfg,
	}
}

// BuildProfile assembles the profile for a person id. It returns
// ErrPersonNotFound when no identity record exists; any other error is a
// data-access failure.
func (s *ProfileService) BuildProfile(id string) (*models.Profile, error) {
	person, err := s.people.GetPerson(id)
	if err != nil {
		return nil, fmt.Errorf("load person: %w", err)
	}
	if person == nil {
		return nil, ErrPersonNotFound
	}

	phones, err := s.people.GetPhones(id)
	if err != nil {
		return nil, fmt.Errorf("load phones: %w", err)
	}
	employers, err := s.people.GetEmployers(id)
	if err != nil {
		return nil, fmt.Errorf("load employers: %w", err)
	}
	vehicles, err := s.people.GetVehiclesByLicense(person.License)
	if err != nil {
		return nil, fmt.Errorf("load vehicles: %w", err)
	}
	trail, err := s.trail.GetTrail(id)
	if err != nil {
		return nil, fmt.Errorf("load trail: %w", err)
	}
	crimes, err := s.crimes.GetAll()
	if err != nil {
		return nil, fmt.Errorf("load crimes: %w", err)
	}
	allBusinesses, err := s.businesses.GetAll()
	if err != nil {
		return nil, fmt.Errorf("load businesses: %w", err)
	}

	// The trail's padded bounding box scopes every sensor-dataset load.
	// No trail means no box and the sensor correlations stay empty.
	box := spatial.BoundsWithPadding(trail, s.cfg.BoundsPadM)

	businessesInBox := []models.Business{}
	wifiEvents := []models.WifiEvent{}
	lprHits := []models.LprHit{}
	if box != nil {
		minTS, maxTS := trail[0].TS, trail[len(trail)-1].TS

		businessesInBox, err = s.businesses.GetInBox(*box)
		if err != nil {
			return nil, fmt.Errorf("load businesses in box: %w", err)
		}
		wifiEvents, err = s.events.GetWifiEventsInBox(minTS, maxTS, *box, nil)
		if err != nil {
			return nil, fmt.Errorf("load wifi events: %w", err)
		}
		lprHits, err = s.events.GetLprHitsInBox(minTS, maxTS, *box, nil)
		if err != nil {
			return nil, fmt.Errorf("load lpr hits: %w", err)
		}
	}

	owned := correlate.OwnedBusinesses(person.First, person.Last, allBusinesses)
	visits := correlate.BusinessVisits(s.cfg, trail, businessesInBox)
	wifiSpots := correlate.WifiSpots(s.cfg, trail, phones, wifiEvents)
	lprSightings := correlate.LprSightings(s.cfg, trail, vehicles, lprHits)

	crimeTrail := correlate.MatchCrimesByTrail(s.cfg, trail, crimes)
	crimeLpr := correlate.MatchCrimesByLpr(s.cfg, lprSightings, crimes)
	crimeWifi := correlate.MatchCrimesByWifi(s.cfg, phones, wifiEvents, crimes)
	crimeMatches := correlate.MergeCrimeMatches(
		correlate.MergeCrimeMatches(crimeTrail, crimeLpr), crimeWifi)

	related, err := correlate.RelatedPeople(s.cfg, s.relations, *person, employers, allBusinesses)
	if err != nil {
		return nil, fmt.Errorf("resolve related people: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"id":           id,
		"trailPings":   len(trail),
		"visits":       len(visits),
		"wifiSpots":    len(wifiSpots),
		"lprSightings": len(lprSightings),
		"crimeMatches": len(crimeMatches),
		"related":      len(related),
	}).Info("profile built")

	return &models.Profile{
		Person:          *person,
		Phones:          phones,
		Vehicles:        vehicles,
		Employers:       employers,
		OwnedBusinesses: owned,
		BusinessVisits:  visits,
		WifiSpots:       wifiSpots,
		LprSightings:    lprSightings,
		CrimeMatches:    crimeMatches,
		RelatedPeople:   related,
	}, nil
}
