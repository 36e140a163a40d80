package modules

import (
	"context"
	"testing"

	"github.com/Adribv/Placement-Site-Backend/src/errs"
	"github.com/Adribv/Placement-Site-Backend/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeModuleStore struct {
	byID map[primitive.ObjectID]models.Module
}

func newFakeModuleStore() *fakeModuleStore {
	return &fakeModuleStore{byID: make(map[primitive.ObjectID]models.Module)}
}

func (f *fakeModuleStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Module, error) {
	m, ok := f.byID[id]
	if !ok {
		return nil, errs.Clone(errs.ErrNotFound, "Module not found")
	}
	return &m, nil
}

func (f *fakeModuleStore) All(ctx context.Context) ([]models.Module, error) {
	var out []models.Module
	for _, m := range f.byID {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeModuleStore) Insert(ctx context.Context, m *models.Module) error {
	m.ID = primitive.NewObjectID()
	if m.StaffAssigned == nil {
		m.StaffAssigned = []primitive.ObjectID{}
	}
	f.byID[m.ID] = *m
	return nil
}

func (f *fakeModuleStore) UpdateDetails(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Module, error) {
	m, ok := f.byID[id]
	if !ok {
		return nil, errs.Clone(errs.ErrNotFound, "Module not found")
	}
	if v, ok := set["title"]; ok {
		m.Title = v.(string)
	}
	if v, ok := set["description"]; ok {
		m.Description = v.(string)
	}
	if v, ok := set["durationDays"]; ok {
		m.DurationDays = v.(int)
	}
	if v, ok := set["examsCount"]; ok {
		m.ExamsCount = v.(int)
	}
	if v, ok := set["isCompleted"]; ok {
		m.IsCompleted = v.(bool)
	}
	f.byID[id] = m
	return &m, nil
}

func (f *fakeModuleStore) AddStaff(ctx context.Context, moduleID, staffID primitive.ObjectID) error {
	m, ok := f.byID[moduleID]
	if !ok {
		return errs.Clone(errs.ErrNotFound, "Module not found")
	}
	for _, id := range m.StaffAssigned {
		if id == staffID {
			return nil
		}
	}
	m.StaffAssigned = append(m.StaffAssigned, staffID)
	f.byID[moduleID] = m
	return nil
}

func (f *fakeModuleStore) SetCompleted(ctx context.Context, id primitive.ObjectID) error {
	m, ok := f.byID[id]
	if !ok {
		return errs.Clone(errs.ErrNotFound, "Module not found")
	}
	m.IsCompleted = true
	f.byID[id] = m
	return nil
}

type fakeEnrollment struct {
	students       map[primitive.ObjectID]models.Student
	enrolled       map[primitive.ObjectID][]primitive.ObjectID
	completedCount map[primitive.ObjectID]int
	incFails       map[primitive.ObjectID]bool
	pushCount      int64
}

func newFakeEnrollment() *fakeEnrollment {
	return &fakeEnrollment{
		students:       make(map[primitive.ObjectID]models.Student),
		enrolled:       make(map[primitive.ObjectID][]primitive.ObjectID),
		completedCount: make(map[primitive.ObjectID]int),
		incFails:       make(map[primitive.ObjectID]bool),
	}
}

func (f *fakeEnrollment) add(name string) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.students[id] = models.Student{ID: id, Name: name}
	return id
}

func (f *fakeEnrollment) PushTraining(ctx context.Context, ids []primitive.ObjectID, moduleID primitive.ObjectID) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := f.students[id]; !ok {
			continue
		}
		f.enrolled[moduleID] = append(f.enrolled[moduleID], id)
		n++
	}
	f.pushCount += n
	return n, nil
}

func (f *fakeEnrollment) EnrolledIDs(ctx context.Context, moduleID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return f.enrolled[moduleID], nil
}

func (f *fakeEnrollment) FindByModule(ctx context.Context, moduleID primitive.ObjectID) ([]models.Student, error) {
	var out []models.Student
	for _, id := range f.enrolled[moduleID] {
		out = append(out, f.students[id])
	}
	return out, nil
}

func (f *fakeEnrollment) IncTrainingsCompleted(ctx context.Context, id primitive.ObjectID) error {
	if f.incFails[id] {
		return errs.Clone(errs.ErrStoreFailure, "increment failed")
	}
	f.completedCount[id]++
	return nil
}

type fakeLedger struct {
	created map[primitive.ObjectID][]primitive.ObjectID
	records map[primitive.ObjectID]map[primitive.ObjectID]*models.TrainingProgress
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		created: make(map[primitive.ObjectID][]primitive.ObjectID),
		records: make(map[primitive.ObjectID]map[primitive.ObjectID]*models.TrainingProgress),
	}
}

func (f *fakeLedger) FindOrCreate(ctx context.Context, studentID, moduleID primitive.ObjectID, examsCount int) (*models.TrainingProgress, error) {
	if f.records[moduleID] == nil {
		f.records[moduleID] = make(map[primitive.ObjectID]*models.TrainingProgress)
	}
	if p, ok := f.records[moduleID][studentID]; ok {
		return p, nil
	}
	scores := make([]models.ExamScore, examsCount)
	for i := range scores {
		scores[i] = models.ExamScore{Exam: i + 1}
	}
	p := &models.TrainingProgress{
		ID:         primitive.NewObjectID(),
		Student:    studentID,
		Training:   moduleID,
		ExamScores: scores,
	}
	f.records[moduleID][studentID] = p
	f.created[moduleID] = append(f.created[moduleID], studentID)
	return p, nil
}

func (f *fakeLedger) Performance(ctx context.Context, studentID, moduleID primitive.ObjectID) (*models.TrainingProgress, error) {
	if p, ok := f.records[moduleID][studentID]; ok {
		return p, nil
	}
	return nil, errs.Clone(errs.ErrNotFound, "Training progress not found")
}

type fakeStaffDir struct {
	staff   map[primitive.ObjectID]models.Staff
	modules map[primitive.ObjectID][]primitive.ObjectID
}

func newFakeStaffDir() *fakeStaffDir {
	return &fakeStaffDir{
		staff:   make(map[primitive.ObjectID]models.Staff),
		modules: make(map[primitive.ObjectID][]primitive.ObjectID),
	}
}

func (f *fakeStaffDir) add(name string) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.staff[id] = models.Staff{ID: id, Name: name}
	return id
}

func (f *fakeStaffDir) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Staff, error) {
	s, ok := f.staff[id]
	if !ok {
		return nil, errs.Clone(errs.ErrNotFound, "Staff not found")
	}
	return &s, nil
}

func (f *fakeStaffDir) AddModule(ctx context.Context, staffID, moduleID primitive.ObjectID) error {
	for _, id := range f.modules[staffID] {
		if id == moduleID {
			return nil
		}
	}
	f.modules[staffID] = append(f.modules[staffID], moduleID)
	return nil
}

func newTestService() (*Service, *fakeModuleStore, *fakeEnrollment, *fakeLedger, *fakeStaffDir) {
	store := newFakeModuleStore()
	enrollment := newFakeEnrollment()
	ledger := newFakeLedger()
	staffDir := newFakeStaffDir()
	return NewService(store, enrollment, ledger, staffDir), store, enrollment, ledger, staffDir
}

func TestCreate(t *testing.T) {
	t.Run("EnrollsAndSeedsProgress", func(t *testing.T) {
		svc, store, enrollment, ledger, _ := newTestService()
		a := enrollment.add("Asha")
		b := enrollment.add("Binu")

		module, assigned, err := svc.Create(context.Background(), CreateModuleRequest{
			Title:        "SQL",
			Description:  "Databases",
			DurationDays: 10,
			ExamsCount:   3,
			Location:     "Chennai",
			StudentIDs:   []primitive.ObjectID{a, b},
		})
		require.NoError(t, err)
		assert.EqualValues(t, 2, assigned)
		assert.False(t, module.IsCompleted)
		assert.Contains(t, store.byID, module.ID)

		require.Len(t, ledger.created[module.ID], 2)
		p, err := ledger.Performance(context.Background(), a, module.ID)
		require.NoError(t, err)
		assert.Len(t, p.ExamScores, 3)
	})

	t.Run("RequiresStudentsAndLocation", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()

		_, _, err := svc.Create(context.Background(), CreateModuleRequest{Location: "Chennai"})
		assert.True(t, errs.Is(err, errs.ErrValidation))

		_, _, err = svc.Create(context.Background(), CreateModuleRequest{
			StudentIDs: []primitive.ObjectID{primitive.NewObjectID()},
		})
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("NoKnownStudentsRejected", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		_, _, err := svc.Create(context.Background(), CreateModuleRequest{
			Title:      "SQL",
			Location:   "Chennai",
			StudentIDs: []primitive.ObjectID{primitive.NewObjectID()},
		})
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}

func TestUpdate(t *testing.T) {
	svc, store, _, _, _ := newTestService()
	id := primitive.NewObjectID()
	store.byID[id] = models.Module{ID: id, Title: "Old", IsCompleted: true}

	t.Run("CompletionCannotBeRevoked", func(t *testing.T) {
		updated, err := svc.Update(context.Background(), id, UpdateModuleRequest{
			Title:        "New",
			Description:  "Desc",
			DurationDays: 5,
			ExamsCount:   2,
			IsCompleted:  false,
		})
		require.NoError(t, err)
		assert.Equal(t, "New", updated.Title)
		assert.True(t, updated.IsCompleted)
	})

	t.Run("MissingFields", func(t *testing.T) {
		_, err := svc.Update(context.Background(), id, UpdateModuleRequest{Title: "x"})
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}

func TestComplete(t *testing.T) {
	t.Run("FlagSetAndCountersBumped", func(t *testing.T) {
		svc, store, enrollment, _, _ := newTestService()
		id := primitive.NewObjectID()
		store.byID[id] = models.Module{ID: id, Title: "SQL"}
		a := enrollment.add("Asha")
		b := enrollment.add("Binu")
		enrollment.enrolled[id] = []primitive.ObjectID{a, b}

		module, updated, err := svc.Complete(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, module.IsCompleted)
		assert.Equal(t, 2, updated)
		assert.Equal(t, 1, enrollment.completedCount[a])
	})

	t.Run("RepeatedCompletionBumpsCountersAgain", func(t *testing.T) {
		svc, store, enrollment, _, _ := newTestService()
		id := primitive.NewObjectID()
		store.byID[id] = models.Module{ID: id, Title: "SQL"}
		a := enrollment.add("Asha")
		enrollment.enrolled[id] = []primitive.ObjectID{a}

		_, _, err := svc.Complete(context.Background(), id)
		require.NoError(t, err)
		_, _, err = svc.Complete(context.Background(), id)
		require.NoError(t, err)

		// the flag is idempotent, the counter is not
		assert.True(t, store.byID[id].IsCompleted)
		assert.Equal(t, 2, enrollment.completedCount[a])
	})

	t.Run("OneFailedIncrementDoesNotBlockTheRest", func(t *testing.T) {
		svc, store, enrollment, _, _ := newTestService()
		id := primitive.NewObjectID()
		store.byID[id] = models.Module{ID: id, Title: "SQL"}
		a := enrollment.add("Asha")
		b := enrollment.add("Binu")
		enrollment.enrolled[id] = []primitive.ObjectID{a, b}
		enrollment.incFails[a] = true

		_, updated, err := svc.Complete(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, 1, updated)
		assert.Equal(t, 1, enrollment.completedCount[b])
	})

	t.Run("UnknownModule", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		_, _, err := svc.Complete(context.Background(), primitive.NewObjectID())
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})
}

func TestStudentsWithProgress(t *testing.T) {
	svc, store, enrollment, ledger, _ := newTestService()
	id := primitive.NewObjectID()
	store.byID[id] = models.Module{ID: id, Title: "SQL", ExamsCount: 2}
	a := enrollment.add("Asha")
	b := enrollment.add("Binu")
	enrollment.enrolled[id] = []primitive.ObjectID{a, b}
	_, err := ledger.FindOrCreate(context.Background(), a, id, 2)
	require.NoError(t, err)

	roster, err := svc.StudentsWithProgress(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, roster, 2)

	byName := make(map[string]StudentWithProgress)
	for _, r := range roster {
		byName[r.Student.Name] = r
	}
	assert.NotNil(t, byName["Asha"].TrainingProgress)
	assert.Nil(t, byName["Binu"].TrainingProgress)

	t.Run("EmptyRoster", func(t *testing.T) {
		emptyID := primitive.NewObjectID()
		store.byID[emptyID] = models.Module{ID: emptyID, Title: "Empty"}
		_, err := svc.StudentsWithProgress(context.Background(), emptyID)
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})
}

func TestAssignStaff(t *testing.T) {
	svc, store, _, _, staffDir := newTestService()
	moduleID := primitive.NewObjectID()
	store.byID[moduleID] = models.Module{ID: moduleID, Title: "SQL", StaffAssigned: []primitive.ObjectID{}}
	staffID := staffDir.add("Priya")

	require.NoError(t, svc.AssignStaff(context.Background(), moduleID, staffID))
	assert.Equal(t, []primitive.ObjectID{staffID}, store.byID[moduleID].StaffAssigned)
	assert.Equal(t, []primitive.ObjectID{moduleID}, staffDir.modules[staffID])

	// assigning again keeps both sides single-entry
	require.NoError(t, svc.AssignStaff(context.Background(), moduleID, staffID))
	assert.Len(t, store.byID[moduleID].StaffAssigned, 1)
	assert.Len(t, staffDir.modules[staffID], 1)

	t.Run("UnknownStaff", func(t *testing.T) {
		err := svc.AssignStaff(context.Background(), moduleID, primitive.NewObjectID())
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("UnknownModule", func(t *testing.T) {
		err := svc.AssignStaff(context.Background(), primitive.NewObjectID(), staffID)
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})
}
