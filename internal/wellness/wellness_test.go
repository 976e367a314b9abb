package wellness

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/projectwellness/wellness-hub/internal/auth"
	"github.com/projectwellness/wellness-hub/internal/database"
	"github.com/projectwellness/wellness-hub/internal/errors"
	"github.com/projectwellness/wellness-hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory repository fakes sharing one store, so cross-entity flows
// (ownership checks, cascades) behave like the real joins.

type store struct {
	users    map[int64]*models.User
	ranches  map[int64]*models.Ranch
	owners   map[int64]int64 // ranch id -> owning user id
	animals  map[int64]*models.Animal
	records  map[int64][]models.HealthRecord
	stations map[int64]*models.Station
	readings map[int64][]models.StationReading
	collars  map[int64]*models.Collar
	pings    map[int64][]models.CollarGPSData
	milk     map[int64]*models.DairyMilk
	indexes  map[int64]*models.WellIndex
	nextID   int64

	// parent rows deleted through an open cascade transaction
	txDeletes int
}

func newStore() *store {
	return &store{
		users:    make(map[int64]*models.User),
		ranches:  make(map[int64]*models.Ranch),
		owners:   make(map[int64]int64),
		animals:  make(map[int64]*models.Animal),
		records:  make(map[int64][]models.HealthRecord),
		stations: make(map[int64]*models.Station),
		readings: make(map[int64][]models.StationReading),
		collars:  make(map[int64]*models.Collar),
		pings:    make(map[int64][]models.CollarGPSData),
		milk:     make(map[int64]*models.DairyMilk),
		indexes:  make(map[int64]*models.WellIndex),
	}
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *store) userOwnsRanch(userID, ranchID int64) bool {
	return s.owners[ranchID] == userID
}

func (s *store) countTxDelete(tx database.Transaction) {
	if tx != nil {
		s.txDeletes++
	}
}

func withinRange(createdAt time.Time, filter models.RangeFilter) bool {
	if filter.StartDate != nil && createdAt.Before(*filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && createdAt.After(*filter.EndDate) {
		return false
	}
	return true
}

type fakeBase struct{}

func (fakeBase) BeginTx(context.Context) (database.Transaction, error) { return fakeTx{}, nil }

type fakeTx struct{}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }
func (fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

type fakeUserRepo struct {
	fakeBase
	s *store
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range r.s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return errors.NewConflictError("username or email already registered", nil)
		}
	}
	user.ID = r.s.id()
	r.s.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id int64) (*models.User, error) {
	user, ok := r.s.users[id]
	if !ok {
		return nil, errors.NewNotFoundError("user not found", nil)
	}
	return user, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, errors.NewNotFoundError("user not found", nil)
}

func (r *fakeUserRepo) List(context.Context) ([]*models.User, error) {
	users := []*models.User{}
	for _, user := range r.s.users {
		users = append(users, user)
	}
	return users, nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, username, role string) error {
	for _, user := range r.s.users {
		if user.Username == username {
			user.Role = role
			return nil
		}
	}
	return errors.NewNotFoundError("user not found", nil)
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.s.users[id]; !ok {
		return errors.NewNotFoundError("user not found", nil)
	}
	delete(r.s.users, id)
	return nil
}

type fakeRanchRepo struct {
	fakeBase
	s *store
}

func (r *fakeRanchRepo) Create(_ context.Context, ranch *models.Ranch) error {
	ranch.ID = r.s.id()
	r.s.ranches[ranch.ID] = ranch
	return nil
}

func (r *fakeRanchRepo) Get(_ context.Context, id int64) (*models.Ranch, error) {
	ranch, ok := r.s.ranches[id]
	if !ok {
		return nil, errors.NewNotFoundError("ranch not found", nil)
	}
	return ranch, nil
}

func (r *fakeRanchRepo) Update(_ context.Context, ranch *models.Ranch) error {
	if _, ok := r.s.ranches[ranch.ID]; !ok {
		return errors.NewNotFoundError("ranch not found", nil)
	}
	r.s.ranches[ranch.ID] = ranch
	return nil
}

func (r *fakeRanchRepo) Delete(_ context.Context, id int64, tx database.Transaction) error {
	if _, ok := r.s.ranches[id]; !ok {
		return errors.NewNotFoundError("ranch not found", nil)
	}
	r.s.countTxDelete(tx)
	delete(r.s.ranches, id)
	return nil
}

func (r *fakeRanchRepo) ListAll(context.Context) ([]*models.Ranch, error) {
	ranches := []*models.Ranch{}
	for _, ranch := range r.s.ranches {
		ranches = append(ranches, ranch)
	}
	return ranches, nil
}

func (r *fakeRanchRepo) ListByUser(_ context.Context, userID int64) ([]*models.Ranch, error) {
	ranches := []*models.Ranch{}
	for id, owner := range r.s.owners {
		if owner == userID {
			if ranch, ok := r.s.ranches[id]; ok {
				ranches = append(ranches, ranch)
			}
		}
	}
	return ranches, nil
}

func (r *fakeRanchRepo) Associate(_ context.Context, userID, ranchID int64) error {
	if _, taken := r.s.owners[ranchID]; taken {
		return errors.NewConflictError("ranch already associated", nil)
	}
	r.s.owners[ranchID] = userID
	return nil
}

func (r *fakeRanchRepo) DeleteAssociationsByRanch(_ context.Context, ranchID int64, _ database.Transaction) error {
	delete(r.s.owners, ranchID)
	return nil
}

type fakeAnimalRepo struct {
	fakeBase
	s *store
}

func (r *fakeAnimalRepo) Create(_ context.Context, animal *models.Animal) error {
	animal.ID = r.s.id()
	r.s.animals[animal.ID] = animal
	return nil
}

func (r *fakeAnimalRepo) Get(_ context.Context, id int64) (*models.Animal, error) {
	animal, ok := r.s.animals[id]
	if !ok {
		return nil, errors.NewNotFoundError("animal not found", nil)
	}
	return animal, nil
}

func (r *fakeAnimalRepo) Update(_ context.Context, animal *models.Animal) error {
	if _, ok := r.s.animals[animal.ID]; !ok {
		return errors.NewNotFoundError("animal not found", nil)
	}
	r.s.animals[animal.ID] = animal
	return nil
}

func (r *fakeAnimalRepo) Delete(_ context.Context, id int64, tx database.Transaction) error {
	if _, ok := r.s.animals[id]; !ok {
		return errors.NewNotFoundError("animal not found", nil)
	}
	r.s.countTxDelete(tx)
	delete(r.s.animals, id)
	return nil
}

func (r *fakeAnimalRepo) info(animal *models.Animal) *models.AnimalInfo {
	info := &models.AnimalInfo{
		AnimalID:     animal.ID,
		AnimalTag:    animal.Tag,
		AnimalAge:    animal.Age,
		AnimalType:   animal.Type,
		AnimalStatus: animal.Status,
	}
	if ranch, ok := r.s.ranches[animal.RanchID]; ok {
		info.RanchName = ranch.Name
	}
	return info
}

func (r *fakeAnimalRepo) ListAll(context.Context) ([]*models.AnimalInfo, error) {
	animals := []*models.AnimalInfo{}
	for _, animal := range r.s.animals {
		animals = append(animals, r.info(animal))
	}
	return animals, nil
}

func (r *fakeAnimalRepo) ListByUser(_ context.Context, userID int64) ([]*models.AnimalInfo, error) {
	animals := []*models.AnimalInfo{}
	for _, animal := range r.s.animals {
		if r.s.userOwnsRanch(userID, animal.RanchID) {
			animals = append(animals, r.info(animal))
		}
	}
	return animals, nil
}

func (r *fakeAnimalRepo) ListByRanch(_ context.Context, ranchID int64) ([]*models.Animal, error) {
	animals := []*models.Animal{}
	for _, animal := range r.s.animals {
		if animal.RanchID == ranchID {
			animals = append(animals, animal)
		}
	}
	return animals, nil
}

func (r *fakeAnimalRepo) DeleteByRanch(_ context.Context, ranchID int64, _ database.Transaction) error {
	for id, animal := range r.s.animals {
		if animal.RanchID == ranchID {
			delete(r.s.animals, id)
		}
	}
	return nil
}

type fakeHealthRecordRepo struct {
	fakeBase
	s *store
}

func (r *fakeHealthRecordRepo) Create(_ context.Context, record *models.HealthRecord) error {
	record.ID = r.s.id()
	r.s.records[record.AnimalID] = append(r.s.records[record.AnimalID], *record)
	return nil
}

func (r *fakeHealthRecordRepo) Get(_ context.Context, id int64) (*models.HealthRecord, error) {
	for _, records := range r.s.records {
		for i := range records {
			if records[i].ID == id {
				return &records[i], nil
			}
		}
	}
	return nil, errors.NewNotFoundError("health record not found", nil)
}

func (r *fakeHealthRecordRepo) Delete(_ context.Context, id int64) error {
	for animalID, records := range r.s.records {
		for i, record := range records {
			if record.ID == id {
				r.s.records[animalID] = append(records[:i], records[i+1:]...)
				return nil
			}
		}
	}
	return errors.NewNotFoundError("health record not found", nil)
}

func (r *fakeHealthRecordRepo) ListByAnimal(_ context.Context, animalID int64, filter models.RangeFilter) ([]models.HealthRecord, error) {
	records := r.s.records[animalID]
	limit := filter.EffectiveLimit()
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (r *fakeHealthRecordRepo) DeleteByAnimal(_ context.Context, animalID int64, _ database.Transaction) error {
	delete(r.s.records, animalID)
	return nil
}

type fakeStationRepo struct {
	fakeBase
	s              *store
	stationRanches map[int64][]int64
}

func (r *fakeStationRepo) Create(_ context.Context, station *models.Station) error {
	station.ID = r.s.id()
	r.s.stations[station.ID] = station
	return nil
}

func (r *fakeStationRepo) Get(_ context.Context, id int64) (*models.Station, error) {
	station, ok := r.s.stations[id]
	if !ok {
		return nil, errors.NewNotFoundError("station not found", nil)
	}
	return station, nil
}

func (r *fakeStationRepo) Update(_ context.Context, station *models.Station) error {
	if _, ok := r.s.stations[station.ID]; !ok {
		return errors.NewNotFoundError("station not found", nil)
	}
	r.s.stations[station.ID] = station
	return nil
}

func (r *fakeStationRepo) Delete(_ context.Context, id int64, tx database.Transaction) error {
	if _, ok := r.s.stations[id]; !ok {
		return errors.NewNotFoundError("station not found", nil)
	}
	r.s.countTxDelete(tx)
	delete(r.s.stations, id)
	return nil
}

func (r *fakeStationRepo) ListAll(context.Context) ([]*models.Station, error) {
	stations := []*models.Station{}
	for _, station := range r.s.stations {
		stations = append(stations, station)
	}
	return stations, nil
}

func (r *fakeStationRepo) ListByUser(_ context.Context, userID int64) ([]*models.StationInfo, error) {
	infos := []*models.StationInfo{}
	for stationID, ranchIDs := range r.stationRanches {
		for _, ranchID := range ranchIDs {
			if r.s.userOwnsRanch(userID, ranchID) {
				if station, ok := r.s.stations[stationID]; ok {
					infos = append(infos, &models.StationInfo{
						StationID:   station.ID,
						StationName: station.Name,
					})
				}
				break
			}
		}
	}
	return infos, nil
}

func (r *fakeStationRepo) Associate(_ context.Context, stationID, ranchID int64) error {
	for _, existing := range r.stationRanches[stationID] {
		if existing == ranchID {
			return errors.NewConflictError("station already associated", nil)
		}
	}
	r.stationRanches[stationID] = append(r.stationRanches[stationID], ranchID)
	return nil
}

func (r *fakeStationRepo) DeleteAssociationsByRanch(_ context.Context, ranchID int64, _ database.Transaction) error {
	for stationID, ranchIDs := range r.stationRanches {
		kept := ranchIDs[:0]
		for _, id := range ranchIDs {
			if id != ranchID {
				kept = append(kept, id)
			}
		}
		r.stationRanches[stationID] = kept
	}
	return nil
}

func (r *fakeStationRepo) DeleteAssociationsByStation(_ context.Context, stationID int64, _ database.Transaction) error {
	delete(r.stationRanches, stationID)
	return nil
}

type fakeStationDataRepo struct {
	fakeBase
	s *store
}

func (r *fakeStationDataRepo) InsertReading(_ context.Context, reading *models.StationReading) error {
	reading.ID = r.s.id()
	r.s.readings[reading.StationID] = append(r.s.readings[reading.StationID], *reading)
	return nil
}

func (r *fakeStationDataRepo) ListByStation(_ context.Context, stationID int64, filter models.RangeFilter) ([]models.StationReading, error) {
	readings := r.s.readings[stationID]
	limit := filter.EffectiveLimit()
	if len(readings) > limit {
		readings = readings[:limit]
	}
	return readings, nil
}

func (r *fakeStationDataRepo) DeleteByStation(_ context.Context, stationID int64, _ database.Transaction) error {
	delete(r.s.readings, stationID)
	return nil
}

type fakeCollarRepo struct {
	fakeBase
	s *store
}

func (r *fakeCollarRepo) Create(_ context.Context, collar *models.Collar) error {
	collar.ID = r.s.id()
	r.s.collars[collar.ID] = collar
	return nil
}

func (r *fakeCollarRepo) Get(_ context.Context, id int64) (*models.Collar, error) {
	collar, ok := r.s.collars[id]
	if !ok {
		return nil, errors.NewNotFoundError("collar not found", nil)
	}
	return collar, nil
}

func (r *fakeCollarRepo) Update(_ context.Context, collar *models.Collar) error {
	if _, ok := r.s.collars[collar.ID]; !ok {
		return errors.NewNotFoundError("collar not found", nil)
	}
	r.s.collars[collar.ID] = collar
	return nil
}

func (r *fakeCollarRepo) Delete(_ context.Context, id int64, tx database.Transaction) error {
	if _, ok := r.s.collars[id]; !ok {
		return errors.NewNotFoundError("collar not found", nil)
	}
	r.s.countTxDelete(tx)
	delete(r.s.collars, id)
	return nil
}

func (r *fakeCollarRepo) info(collar *models.Collar) *models.CollarInfo {
	info := &models.CollarInfo{
		CollarID:     collar.ID,
		CollarDevEUI: collar.DevEUI,
		AnimalID:     collar.AnimalID,
	}
	if animal, ok := r.s.animals[collar.AnimalID]; ok {
		info.AnimalTag = animal.Tag
		if ranch, ok := r.s.ranches[animal.RanchID]; ok {
			info.RanchName = ranch.Name
		}
	}
	return info
}

func (r *fakeCollarRepo) ListAll(context.Context) ([]*models.CollarInfo, error) {
	collars := []*models.CollarInfo{}
	for _, collar := range r.s.collars {
		collars = append(collars, r.info(collar))
	}
	return collars, nil
}

func (r *fakeCollarRepo) ListByUser(_ context.Context, userID int64) ([]*models.CollarInfo, error) {
	collars := []*models.CollarInfo{}
	for _, collar := range r.s.collars {
		if animal, ok := r.s.animals[collar.AnimalID]; ok && r.s.userOwnsRanch(userID, animal.RanchID) {
			collars = append(collars, r.info(collar))
		}
	}
	return collars, nil
}

func (r *fakeCollarRepo) hasCollar(animalID int64) bool {
	for _, collar := range r.s.collars {
		if collar.AnimalID == animalID {
			return true
		}
	}
	return false
}

func (r *fakeCollarRepo) uncollared(animal *models.Animal) *models.UncollaredAnimalInfo {
	info := &models.UncollaredAnimalInfo{
		AnimalID:   animal.ID,
		AnimalTag:  animal.Tag,
		AnimalType: animal.Type,
	}
	if ranch, ok := r.s.ranches[animal.RanchID]; ok {
		info.RanchName = ranch.Name
	}
	return info
}

func (r *fakeCollarRepo) ListUncollaredByUser(_ context.Context, userID int64) ([]*models.UncollaredAnimalInfo, error) {
	animals := []*models.UncollaredAnimalInfo{}
	for _, animal := range r.s.animals {
		if r.s.userOwnsRanch(userID, animal.RanchID) && !r.hasCollar(animal.ID) {
			animals = append(animals, r.uncollared(animal))
		}
	}
	return animals, nil
}

func (r *fakeCollarRepo) ListUncollaredAll(context.Context) ([]*models.UncollaredAnimalInfo, error) {
	animals := []*models.UncollaredAnimalInfo{}
	for _, animal := range r.s.animals {
		if !r.hasCollar(animal.ID) {
			animals = append(animals, r.uncollared(animal))
		}
	}
	return animals, nil
}

func (r *fakeCollarRepo) ListByAnimal(_ context.Context, animalID int64) ([]*models.Collar, error) {
	collars := []*models.Collar{}
	for _, collar := range r.s.collars {
		if collar.AnimalID == animalID {
			collars = append(collars, collar)
		}
	}
	return collars, nil
}

func (r *fakeCollarRepo) DeleteByAnimal(_ context.Context, animalID int64, _ database.Transaction) error {
	for id, collar := range r.s.collars {
		if collar.AnimalID == animalID {
			delete(r.s.collars, id)
		}
	}
	return nil
}

type fakeCollarDataRepo struct {
	fakeBase
	s *store
}

func (r *fakeCollarDataRepo) Insert(_ context.Context, data *models.CollarGPSData) error {
	data.ID = r.s.id()
	r.s.pings[data.CollarID] = append(r.s.pings[data.CollarID], *data)
	return nil
}

func (r *fakeCollarDataRepo) InsertBatch(ctx context.Context, batch []*models.CollarGPSData) error {
	for _, data := range batch {
		if err := r.Insert(ctx, data); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeCollarDataRepo) ListByCollar(_ context.Context, collarID int64, filter models.RangeFilter) ([]models.CollarGPSData, error) {
	pings := r.s.pings[collarID]
	limit := filter.EffectiveLimit()
	if len(pings) > limit {
		pings = pings[:limit]
	}
	return pings, nil
}

func (r *fakeCollarDataRepo) DeleteByCollar(_ context.Context, collarID int64, _ database.Transaction) error {
	delete(r.s.pings, collarID)
	return nil
}

type fakeMilkRepo struct {
	fakeBase
	s *store
}

func (r *fakeMilkRepo) Create(_ context.Context, milk *models.DairyMilk) error {
	milk.ID = r.s.id()
	r.s.milk[milk.ID] = milk
	return nil
}

func (r *fakeMilkRepo) Get(_ context.Context, id int64) (*models.DairyMilk, error) {
	milk, ok := r.s.milk[id]
	if !ok {
		return nil, errors.NewNotFoundError("milk record not found", nil)
	}
	return milk, nil
}

func (r *fakeMilkRepo) Update(_ context.Context, milk *models.DairyMilk) error {
	if _, ok := r.s.milk[milk.ID]; !ok {
		return errors.NewNotFoundError("milk record not found", nil)
	}
	r.s.milk[milk.ID] = milk
	return nil
}

func (r *fakeMilkRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.s.milk[id]; !ok {
		return errors.NewNotFoundError("milk record not found", nil)
	}
	delete(r.s.milk, id)
	return nil
}

func (r *fakeMilkRepo) info(milk *models.DairyMilk) *models.DairyMilkInfo {
	info := &models.DairyMilkInfo{
		DairyMilkID:  milk.ID,
		MilkQuality:  milk.MilkQuality,
		MilkQuantity: milk.MilkQuantity,
		CreatedAt:    milk.CreatedAt,
		UpdatedAt:    milk.UpdatedAt,
	}
	if ranch, ok := r.s.ranches[milk.RanchID]; ok {
		info.RanchName = ranch.Name
	}
	return info
}

func (r *fakeMilkRepo) ListAll(_ context.Context, filter models.RangeFilter) ([]*models.DairyMilkInfo, error) {
	records := []*models.DairyMilkInfo{}
	for _, milk := range r.s.milk {
		if len(records) == filter.EffectiveLimit() {
			break
		}
		if withinRange(milk.CreatedAt, filter) {
			records = append(records, r.info(milk))
		}
	}
	return records, nil
}

func (r *fakeMilkRepo) ListByUser(_ context.Context, userID int64, filter models.RangeFilter) ([]*models.DairyMilkInfo, error) {
	records := []*models.DairyMilkInfo{}
	for _, milk := range r.s.milk {
		if len(records) == filter.EffectiveLimit() {
			break
		}
		if r.s.userOwnsRanch(userID, milk.RanchID) && withinRange(milk.CreatedAt, filter) {
			records = append(records, r.info(milk))
		}
	}
	return records, nil
}

func (r *fakeMilkRepo) DeleteByRanch(_ context.Context, ranchID int64, _ database.Transaction) error {
	for id, milk := range r.s.milk {
		if milk.RanchID == ranchID {
			delete(r.s.milk, id)
		}
	}
	return nil
}

type fakeWellIndexRepo struct {
	fakeBase
	s *store
}

func (r *fakeWellIndexRepo) Create(_ context.Context, index *models.WellIndex) error {
	index.ID = r.s.id()
	r.s.indexes[index.ID] = index
	return nil
}

func (r *fakeWellIndexRepo) Get(_ context.Context, id int64) (*models.WellIndex, error) {
	index, ok := r.s.indexes[id]
	if !ok {
		return nil, errors.NewNotFoundError("wellbeing index not found", nil)
	}
	return index, nil
}

func (r *fakeWellIndexRepo) Update(_ context.Context, index *models.WellIndex) error {
	if _, ok := r.s.indexes[index.ID]; !ok {
		return errors.NewNotFoundError("wellbeing index not found", nil)
	}
	r.s.indexes[index.ID] = index
	return nil
}

func (r *fakeWellIndexRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.s.indexes[id]; !ok {
		return errors.NewNotFoundError("wellbeing index not found", nil)
	}
	delete(r.s.indexes, id)
	return nil
}

func (r *fakeWellIndexRepo) info(index *models.WellIndex) *models.WellIndexInfo {
	info := &models.WellIndexInfo{
		IndexValue: index.IndexValue,
		CreatedAt:  index.CreatedAt,
		UpdatedAt:  index.UpdatedAt,
	}
	if ranch, ok := r.s.ranches[index.RanchID]; ok {
		info.RanchName = ranch.Name
	}
	return info
}

func (r *fakeWellIndexRepo) ListAll(_ context.Context, filter models.RangeFilter) ([]*models.WellIndexInfo, error) {
	indexes := []*models.WellIndexInfo{}
	for _, index := range r.s.indexes {
		if len(indexes) == filter.EffectiveLimit() {
			break
		}
		if withinRange(index.CreatedAt, filter) {
			indexes = append(indexes, r.info(index))
		}
	}
	return indexes, nil
}

func (r *fakeWellIndexRepo) ListByUser(_ context.Context, userID int64, filter models.RangeFilter) ([]*models.WellIndexInfo, error) {
	indexes := []*models.WellIndexInfo{}
	for _, index := range r.s.indexes {
		if len(indexes) == filter.EffectiveLimit() {
			break
		}
		if r.s.userOwnsRanch(userID, index.RanchID) && withinRange(index.CreatedAt, filter) {
			indexes = append(indexes, r.info(index))
		}
	}
	return indexes, nil
}

func (r *fakeWellIndexRepo) DeleteByRanch(_ context.Context, ranchID int64, _ database.Transaction) error {
	for id, index := range r.s.indexes {
		if index.RanchID == ranchID {
			delete(r.s.indexes, id)
		}
	}
	return nil
}

// Test fixture

func newTestService(t *testing.T) (*WellnessService, *store) {
	t.Helper()
	s := newStore()

	svc := New(
		&fakeUserRepo{s: s},
		&fakeRanchRepo{s: s},
		&fakeAnimalRepo{s: s},
		&fakeHealthRecordRepo{s: s},
		&fakeStationRepo{s: s, stationRanches: make(map[int64][]int64)},
		&fakeStationDataRepo{s: s},
		&fakeCollarRepo{s: s},
		&fakeCollarDataRepo{s: s},
		&fakeMilkRepo{s: s},
		&fakeWellIndexRepo{s: s},
		auth.NewService("test-secret", 30*time.Minute),
	)
	require.NoError(t, svc.Validate())
	return svc, s
}

func asUser(userID int64, username, role string) context.Context {
	return auth.ContextWithUser(context.Background(), &auth.UserContext{
		UserID:   userID,
		Username: username,
		Role:     role,
	})
}

func (s *store) addRanch(name string, ownerID int64) *models.Ranch {
	ranch := &models.Ranch{ID: s.id(), Name: name}
	s.ranches[ranch.ID] = ranch
	if ownerID != 0 {
		s.owners[ranch.ID] = ownerID
	}
	return ranch
}

func (s *store) addAnimal(ranchID int64, tag string) *models.Animal {
	animal := &models.Animal{ID: s.id(), RanchID: ranchID, Tag: tag, Status: true}
	s.animals[animal.ID] = animal
	return animal
}

func (s *store) addCollar(animalID int64, devEUI string) *models.Collar {
	collar := &models.Collar{ID: s.id(), AnimalID: animalID, DevEUI: devEUI}
	s.collars[collar.ID] = collar
	return collar
}

func (s *store) addMilk(ranchID int64, quality float64) *models.DairyMilk {
	milk := &models.DairyMilk{ID: s.id(), RanchID: ranchID, MilkQuality: quality}
	s.milk[milk.ID] = milk
	return milk
}

func (s *store) addIndex(ranchID int64, value float64) *models.WellIndex {
	index := &models.WellIndex{ID: s.id(), RanchID: ranchID, IndexValue: value}
	s.indexes[index.ID] = index
	return index
}

func assertStatus(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := err.(*errors.APIError)
	require.True(t, ok, "expected APIError, got %T: %v", err, err)
	assert.Equal(t, code, apiErr.Code)
}

// Tests

func TestListRanchesScopedToOwner(t *testing.T) {
	svc, s := newTestService(t)
	s.addRanch("alpine", 1)
	s.addRanch("lowland", 2)

	ranches, err := svc.ListRanches(asUser(1, "alice", models.RoleRancher))
	require.NoError(t, err)
	require.Len(t, ranches, 1)
	assert.Equal(t, "alpine", ranches[0].Name)

	all, err := svc.ListRanches(asUser(9, "root", models.RoleAdmin))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListRanchesDeniedForUnknownRole(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ListRanches(asUser(1, "mallory", "superuser"))
	assertStatus(t, err, 403)
}

func TestCreateRanchAssociatesCaller(t *testing.T) {
	svc, s := newTestService(t)

	ranch := &models.Ranch{Name: "alpine"}
	err := svc.CreateRanch(asUser(1, "alice", models.RoleRancher), ranch)
	require.NoError(t, err)
	assert.NotZero(t, ranch.ID)
	assert.Equal(t, int64(1), s.owners[ranch.ID])
	assert.False(t, ranch.CreatedAt.IsZero())
}

func TestAssociateRanchConflictWhenAlreadyClaimed(t *testing.T) {
	svc, s := newTestService(t)
	ranch := s.addRanch("alpine", 1)

	err := svc.AssociateRanch(asUser(2, "bob", models.RoleRancher), ranch.ID)
	assertStatus(t, err, 409)
}

func TestAssociateRanchUnknownRanch(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.AssociateRanch(asUser(1, "alice", models.RoleRancher), 999)
	assertStatus(t, err, 404)
}

func TestCreateAnimalForcesAliveStatus(t *testing.T) {
	svc, s := newTestService(t)
	ranch := s.addRanch("alpine", 1)

	animal := &models.Animal{RanchID: ranch.ID, Tag: "cow-7", Status: false}
	err := svc.CreateAnimal(asUser(1, "alice", models.RoleRancher), animal)
	require.NoError(t, err)
	assert.True(t, animal.Status)
	assert.True(t, s.animals[animal.ID].Status)
}

func TestCreateAnimalOnForeignRanchDenied(t *testing.T) {
	svc, s := newTestService(t)
	ranch := s.addRanch("alpine", 1)

	animal := &models.Animal{RanchID: ranch.ID, Tag: "cow-7"}
	err := svc.CreateAnimal(asUser(2, "bob", models.RoleRancher), animal)
	assertStatus(t, err, 403)
}

func TestListAnimalsScoped(t *testing.T) {
	svc, s := newTestService(t)
	mine := s.addRanch("alpine", 1)
	theirs := s.addRanch("lowland", 2)
	s.addAnimal(mine.ID, "cow-1")
	s.addAnimal(theirs.ID, "cow-2")

	animals, err := svc.ListAnimals(asUser(1, "alice", models.RoleRancher))
	require.NoError(t, err)
	require.Len(t, animals, 1)
	assert.Equal(t, "cow-1", animals[0].AnimalTag)

	all, err := svc.ListAnimals(asUser(9, "root", models.RoleAdmin))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCheesemakerSeesMilkButNotAnimals(t *testing.T) {
	svc, s := newTestService(t)
	ranch := s.addRanch("alpine", 3)
	s.addMilk(ranch.ID, 4.2)

	_, err := svc.ListAnimals(asUser(3, "carol", models.RoleCheesemaker))
	assertStatus(t, err, 403)

	records, err := svc.ListMilk(asUser(3, "carol", models.RoleCheesemaker), models.RangeFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 4.2, records[0].MilkQuality)
}

func TestDeleteAnimalMissing(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.DeleteAnimal(asUser(9, "root", models.RoleAdmin), 404)
	assertStatus(t, err, 404)
}

func TestDeleteRanchCascades(t *testing.T) {
	svc, s := newTestService(t)
	ranch := s.addRanch("alpine", 1)
	animal := s.addAnimal(ranch.ID, "cow-1")
	collar := s.addCollar(animal.ID, "eui-1")
	s.pings[collar.ID] = []models.CollarGPSData{{CollarID: collar.ID}}
	s.records[animal.ID] = []models.HealthRecord{{AnimalID: animal.ID}}
	s.addMilk(ranch.ID, 4.0)
	s.addIndex(ranch.ID, 0.8)

	err := svc.DeleteRanch(asUser(1, "alice", models.RoleRancher), ranch.ID)
	require.NoError(t, err)

	// The ranch row itself must go through the cascade transaction, not a
	// separate connection.
	assert.Equal(t, 1, s.txDeletes)
	assert.Empty(t, s.ranches)
	assert.Empty(t, s.animals)
	assert.Empty(t, s.collars)
	assert.Empty(t, s.pings)
	assert.Empty(t, s.records)
	assert.Empty(t, s.milk)
	assert.Empty(t, s.indexes)
	assert.Empty(t, s.owners)
}

func TestUncollaredEmptyReportsNotFound(t *testing.T) {
	svc, s := newTestService(t)
	ranch := s.addRanch("alpine", 1)
	animal := s.addAnimal(ranch.ID, "cow-1")
	s.addCollar(animal.ID, "eui-1")

	_, err := svc.ListUncollaredAnimals(asUser(1, "alice", models.RoleRancher))
	assertStatus(t, err, 404)
}

func TestUncollaredListsOwnAnimals(t *testing.T) {
	svc, s := newTestService(t)
	ranch := s.addRanch("alpine", 1)
	s.addAnimal(ranch.ID, "cow-1")

	animals, err := svc.ListUncollaredAnimals(asUser(1, "alice", models.RoleRancher))
	require.NoError(t, err)
	require.Len(t, animals, 1)
	assert.Equal(t, "cow-1", animals[0].AnimalTag)
}

func TestIngestKMLStoresBatch(t *testing.T) {
	svc, s := newTestService(t)
	ranch := s.addRanch("alpine", 1)
	animal := s.addAnimal(ranch.ID, "cow-1")
	collar := s.addCollar(animal.ID, "eui-1")

	doc := `<kml>
  <Placemark>
    <TimeStamp><when>2024-05-01T06:00:00Z</when></TimeStamp>
    <Point><coordinates>9.10,45.10,320.0</coordinates></Point>
  </Placemark>
  <Placemark>
    <TimeStamp><when>2024-05-01T06:05:00Z</when></TimeStamp>
    <Point><coordinates>9.11,45.11,321.0</coordinates></Point>
  </Placemark>
  <Placemark>
    <Point><coordinates>9.12,45.12,322.0</coordinates></Point>
  </Placemark>
</kml>`

	summary, err := svc.IngestKML(asUser(1, "alice", models.RoleRancher), collar.ID, strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Inserted)
	assert.Equal(t, 1, summary.Skipped)

	pings := s.pings[collar.ID]
	require.Len(t, pings, 2)
	assert.Equal(t, 9.10, pings[0].Longitude)
	assert.Equal(t, 45.10, pings[0].Latitude)
}

func TestIngestKMLForeignCollarDenied(t *testing.T) {
	svc, s := newTestService(t)
	ranch := s.addRanch("alpine", 1)
	animal := s.addAnimal(ranch.ID, "cow-1")
	collar := s.addCollar(animal.ID, "eui-1")

	_, err := svc.IngestKML(asUser(2, "bob", models.RoleRancher), collar.ID, strings.NewReader("<kml></kml>"))
	assertStatus(t, err, 403)
}

func TestCollarRouteOrdersPositions(t *testing.T) {
	svc, s := newTestService(t)
	ranch := s.addRanch("alpine", 1)
	animal := s.addAnimal(ranch.ID, "cow-1")
	collar := s.addCollar(animal.ID, "eui-1")
	s.pings[collar.ID] = []models.CollarGPSData{
		{CollarID: collar.ID, Longitude: 9.1, Latitude: 45.1},
		{CollarID: collar.ID, Longitude: 9.2, Latitude: 45.2},
	}

	route, err := svc.GetCollarRoute(asUser(1, "alice", models.RoleRancher), collar.ID, models.RangeFilter{})
	require.NoError(t, err)
	require.Len(t, route.Features, 1)
	assert.Equal(t, "LineString", route.Features[0].Geometry.Type)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterRequest{Username: "alice", Email: "a@farm.example", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &RegisterRequest{Username: "alice", Email: "b@farm.example", Password: "pw"})
	assertStatus(t, err, 409)
}

func TestRegisterHidesPasswordHash(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "alice", Email: "a@farm.example", Password: "pw",
	})
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, models.RoleRancher, user.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterRequest{Username: "alice", Email: "a@farm.example", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrong")
	assertStatus(t, err, 401)

	token, err := svc.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)
	assert.NotEmpty(t, token.AccessToken)
}

func TestAdminEndpointsRequireAdmin(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ListUsers(asUser(1, "alice", models.RoleRancher))
	assertStatus(t, err, 403)

	err = svc.UpdateUserRole(asUser(1, "alice", models.RoleRancher), "bob", models.RoleVet)
	assertStatus(t, err, 403)
}

func TestUpdateUserRoleValidatesRole(t *testing.T) {
	svc, s := newTestService(t)
	s.users[1] = &models.User{ID: 1, Username: "bob", Role: models.RoleRancher}

	err := svc.UpdateUserRole(asUser(9, "root", models.RoleAdmin), "bob", "wizard")
	assertStatus(t, err, 400)

	err = svc.UpdateUserRole(asUser(9, "root", models.RoleAdmin), "bob", models.RoleVet)
	require.NoError(t, err)
	assert.Equal(t, models.RoleVet, s.users[1].Role)
}

func TestDeleteAnimalRunsInCascadeTransaction(t *testing.T) {
	svc, s := newTestService(t)
	ranch := s.addRanch("alpine", 1)
	animal := s.addAnimal(ranch.ID, "cow-1")

	err := svc.DeleteAnimal(asUser(1, "alice", models.RoleRancher), animal.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, s.txDeletes)
	assert.Empty(t, s.animals)
}

func TestMilkMutationsScopedToOwner(t *testing.T) {
	svc, s := newTestService(t)
	ranch := s.addRanch("alpine", 1)
	milk := s.addMilk(ranch.ID, 4.2)

	foreign := asUser(2, "bob", models.RoleRancher)

	err := svc.DeleteMilk(foreign, milk.ID)
	assertStatus(t, err, 403)
	assert.Contains(t, s.milk, milk.ID)

	err = svc.UpdateMilk(foreign, &models.DairyMilk{ID: milk.ID, MilkQuality: 1.0})
	assertStatus(t, err, 403)
	assert.Equal(t, 4.2, s.milk[milk.ID].MilkQuality)

	err = svc.DeleteMilk(asUser(1, "alice", models.RoleRancher), milk.ID)
	require.NoError(t, err)
	assert.Empty(t, s.milk)
}

func TestWellIndexMutationsScopedToOwner(t *testing.T) {
	svc, s := newTestService(t)
	ranch := s.addRanch("alpine", 1)
	index := s.addIndex(ranch.ID, 0.8)

	foreign := asUser(2, "bob", models.RoleRancher)

	err := svc.DeleteWellIndex(foreign, index.ID)
	assertStatus(t, err, 403)
	assert.Contains(t, s.indexes, index.ID)

	err = svc.UpdateWellIndex(foreign, &models.WellIndex{ID: index.ID, IndexValue: 0.1})
	assertStatus(t, err, 403)
	assert.Equal(t, 0.8, s.indexes[index.ID].IndexValue)

	err = svc.DeleteWellIndex(asUser(1, "alice", models.RoleRancher), index.ID)
	require.NoError(t, err)
	assert.Empty(t, s.indexes)
}

func TestDeleteHealthRecordScopedToOwner(t *testing.T) {
	svc, s := newTestService(t)
	ranch := s.addRanch("alpine", 1)
	animal := s.addAnimal(ranch.ID, "cow-1")
	record := models.HealthRecord{ID: s.id(), AnimalID: animal.ID}
	s.records[animal.ID] = []models.HealthRecord{record}

	err := svc.DeleteHealthRecord(asUser(2, "bob", models.RoleRancher), record.ID)
	assertStatus(t, err, 403)
	assert.Len(t, s.records[animal.ID], 1)

	err = svc.DeleteHealthRecord(asUser(1, "alice", models.RoleRancher), record.ID)
	require.NoError(t, err)
	assert.Empty(t, s.records[animal.ID])
}

func TestDeleteStationClearsAssociations(t *testing.T) {
	svc, s := newTestService(t)
	ranch := s.addRanch("alpine", 1)
	station := &models.Station{Name: "ridge"}
	require.NoError(t, svc.CreateStation(asUser(9, "root", models.RoleAdmin), station))
	require.NoError(t, svc.AssociateStationRanch(asUser(9, "root", models.RoleAdmin), station.ID, ranch.ID))
	s.readings[station.ID] = []models.StationReading{{StationID: station.ID}}

	err := svc.DeleteStation(asUser(9, "root", models.RoleAdmin), station.ID)
	require.NoError(t, err)

	assert.Empty(t, s.stations)
	assert.Empty(t, s.readings)
	stations, err := svc.ListStations(asUser(1, "alice", models.RoleRancher))
	require.NoError(t, err)
	assert.Empty(t, stations)
}

func TestListMilkHonorsRangeFilter(t *testing.T) {
	svc, s := newTestService(t)
	ranch := s.addRanch("alpine", 1)

	day := func(d int) time.Time {
		return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
	}
	s.addMilk(ranch.ID, 3.0).CreatedAt = day(1)
	s.addMilk(ranch.ID, 4.0).CreatedAt = day(2)
	s.addMilk(ranch.ID, 5.0).CreatedAt = day(3)

	ctx := asUser(1, "alice", models.RoleRancher)

	// Bounds are inclusive on both ends.
	start, end := day(2), day(2)
	records, err := svc.ListMilk(ctx, models.RangeFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 4.0, records[0].MilkQuality)

	// An explicit limit of zero returns zero rows.
	zero := 0
	records, err = svc.ListMilk(ctx, models.RangeFilter{Limit: &zero})
	require.NoError(t, err)
	assert.Empty(t, records)
}
