package correlate

import (
	"fmt"
	"sync"

	"github.com/poinet/profiler-backend-go/internal/models"
)

// RelationStore is the slice of the data provider the resolver consumes:
// relationship lookups around an anchor person plus batch loaders for the
// discovered set. Lookups exclude the anchor id themselves.
type RelationStore interface {
	PeopleAtAddress(addr, excludeID string) ([]string, error)
	FilersAtAddress(addr, excludeID string) ([]string, error)
	PeopleAtEmployerAddress(addr, excludeID string) ([]string, error)
	CoworkersAtEmployerNames(names []string, excludeID string) ([]string, error)

	PersonMinis(ids []string) (map[string]models.PersonMini, error)
	PhonesFor(ids []string) (map[string][]models.Phone, error)
	VehiclesForLicenses(licenseByID map[string]string) (map[string][]models.Vehicle, error)
	PrimaryEmployers(ids []string) (map[string]models.Employer, error)
}

// relatedSet keeps the discovered ids in insertion order together with
// the via tags that justified each one.
type relatedSet struct {
	ids  []string
	vias map[string][]string
}

func (r *relatedSet) add(id, via string) {
	if id == "" {
		return
	}
	tags, known := r.vias[id]
	if !known {
		r.ids = append(r.ids, id)
	}
	for _, t := range tags {
		if t == via {
			return
		}
	}
	r.vias[id] = append(tags, via)
}

// RelatedPeople discovers people linked to the POI through shared home
// addresses and employers, then enriches each with a minimal profile,
// phones, vehicles, owned businesses, and a primary employer. An id
// discovered through several paths appears once with every applicable via
// tag. Cards come back in discovery order.
func RelatedPeople(cfg Config, store RelationStore, poi models.Person, employers []models.Employer, businesses []models.Business) ([]models.RelatedPerson, error) {
	rel := &relatedSet{vias: make(map[string][]string)}

	anchorAddr := upperTrim(poi.Address)
	if anchorAddr != "" {
		ids, err := store.PeopleAtAddress(anchorAddr, poi.ID)
		if err != nil {
			return nil, fmt.Errorf("people at address: %w", err)
		}
		for _, id := range ids {
			rel.add(id, ViaHousehold)
		}

		ids, err = store.FilersAtAddress(anchorAddr, poi.ID)
		if err != nil {
			return nil, fmt.Errorf("filers at address: %w", err)
		}
		for _, id := range ids {
			rel.add(id, ViaHousehold)
		}

		ids, err = store.PeopleAtEmployerAddress(anchorAddr, poi.ID)
		if err != nil {
			return nil, fmt.Errorf("people at employer address: %w", err)
		}
		for _, id := range ids {
			rel.add(id, ViaEmployerAddr)
		}
	}

	empNames := make([]string, 0, len(employers))
	seen := make(map[string]struct{}, len(employers))
	for _, e := range employers {
		n := upperTrim(e.Name)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		empNames = append(empNames, n)
	}
	if len(empNames) > 0 {
		ids, err := store.CoworkersAtEmployerNames(empNames, poi.ID)
		if err != nil {
			return nil, fmt.Errorf("coworkers: %w", err)
		}
		for _, id := range ids {
			rel.add(id, ViaCoworker)
		}
	}

	cards := []models.RelatedPerson{}
	if len(rel.ids) == 0 {
		return cards, nil
	}

	minis, err := store.PersonMinis(rel.ids)
	if err != nil {
		return nil, fmt.Errorf("load minimal profiles: %w", err)
	}
	phones, err := store.PhonesFor(rel.ids)
	if err != nil {
		return nil, fmt.Errorf("load phones: %w", err)
	}
	licenseByID := make(map[string]string)
	for id, m := range minis {
		if m.License != "" {
			licenseByID[id] = m.License
		}
	}
	vehicles, err := store.VehiclesForLicenses(licenseByID)
	if err != nil {
		return nil, fmt.Errorf("load vehicles: %w", err)
	}
	primary, err := store.PrimaryEmployers(rel.ids)
	if err != nil {
		return nil, fmt.Errorf("load primary employers: %w", err)
	}

	// Ownership matching is the expensive step, so fan it out. The shared
	// map is the reduce target and must stay behind the mutex.
	owned := make(map[string][]models.OwnedBusiness)
	var mu sync.Mutex
	forEachIndex(len(rel.ids), cfg.Workers, func(i int) {
		id := rel.ids[i]
		m, ok := minis[id]
		if !ok {
			return
		}
		obs := OwnedBusinesses(m.First, m.Last, businesses)
		mu.Lock()
		owned[id] = obs
		mu.Unlock()
	})

	for _, id := range rel.ids {
		m := minis[id] // zero value when absent; card keeps just the id
		card := models.RelatedPerson{
			ID:         id,
			Name:       m.Name,
			Address:    m.Address,
			Via:        rel.vias[id],
			Phones:     phones[id],
			Vehicles:   vehicles[id],
			Businesses: owned[id],
		}
		if card.Phones == nil {
			card.Phones = []models.Phone{}
		}
		if card.Vehicles == nil {
			card.Vehicles = []models.Vehicle{}
		}
		if card.Businesses == nil {
			card.Businesses = []models.OwnedBusiness{}
		}
		if pe, ok := primary[id]; ok {
			card.EmployerName = pe.Name
			card.EmployerAddress = pe.Address
		}
		cards = append(cards, card)
	}
	return cards, nil
}
