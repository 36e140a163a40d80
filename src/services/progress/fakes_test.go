package progress

import (
	"context"
	"sync"

	"github.com/Adribv/Placement-Site-Backend/src/errs"
	"github.com/Adribv/Placement-Site-Backend/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type pairKey struct {
	student  primitive.ObjectID
	training primitive.ObjectID
}

// fakeStore is an in-memory Store. The bulk paths hit it from many
// goroutines, so every method takes the lock.
type fakeStore struct {
	mu      sync.Mutex
	records map[pairKey]models.TrainingProgress

	insertErr  error
	inserted   int
	replaceErr map[pairKey]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records:    make(map[pairKey]models.TrainingProgress),
		replaceErr: make(map[pairKey]error),
	}
}

func (f *fakeStore) put(p models.TrainingProgress) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[pairKey{p.Student, p.Training}] = p
}

func (f *fakeStore) get(studentID, trainingID primitive.ObjectID) (models.TrainingProgress, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.records[pairKey{studentID, trainingID}]
	return p, ok
}

func (f *fakeStore) FindByPair(ctx context.Context, studentID, trainingID primitive.ObjectID) (*models.TrainingProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.records[pairKey{studentID, trainingID}]
	if !ok {
		return nil, errs.Clone(errs.ErrNotFound, "Training progress not found")
	}
	rec := p
	return &rec, nil
}

func (f *fakeStore) FindByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.TrainingProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.TrainingProgress
	for k, p := range f.records {
		if k.student == studentID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) FindByTraining(ctx context.Context, trainingID primitive.ObjectID) ([]models.TrainingProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.TrainingProgress
	for k, p := range f.records {
		if k.training == trainingID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) Insert(ctx context.Context, p *models.TrainingProgress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	key := pairKey{p.Student, p.Training}
	if _, exists := f.records[key]; exists {
		return errs.Clone(errs.ErrDuplicate, "progress record already exists")
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.records[key] = *p
	f.inserted++
	return nil
}

func (f *fakeStore) Replace(ctx context.Context, p *models.TrainingProgress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := pairKey{p.Student, p.Training}
	if err := f.replaceErr[key]; err != nil {
		return err
	}
	if _, ok := f.records[key]; !ok {
		return errs.Clone(errs.ErrNotFound, "Training progress not found")
	}
	f.records[key] = *p
	return nil
}

// fakeStudents resolves regNos and module rosters from fixed maps.
type fakeStudents struct {
	byID     map[primitive.ObjectID]models.Student
	byRegNo  map[string]primitive.ObjectID
	enrolled map[primitive.ObjectID][]primitive.ObjectID
}

func newFakeStudents() *fakeStudents {
	return &fakeStudents{
		byID:     make(map[primitive.ObjectID]models.Student),
		byRegNo:  make(map[string]primitive.ObjectID),
		enrolled: make(map[primitive.ObjectID][]primitive.ObjectID),
	}
}

func (f *fakeStudents) add(name, regNo string) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.byID[id] = models.Student{ID: id, Name: name, RegNo: regNo}
	f.byRegNo[regNo] = id
	return id
}

func (f *fakeStudents) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, errs.Clone(errs.ErrNotFound, "Student not found")
	}
	return &s, nil
}

func (f *fakeStudents) IDByRegNo(ctx context.Context, regNo string) (primitive.ObjectID, error) {
	id, ok := f.byRegNo[regNo]
	if !ok {
		return primitive.NilObjectID, errs.Clone(errs.ErrNotFound, "Student not found")
	}
	return id, nil
}

func (f *fakeStudents) EnrolledIDs(ctx context.Context, moduleID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return f.enrolled[moduleID], nil
}

type fakeModules struct {
	byID map[primitive.ObjectID]models.Module
}

func newFakeModules() *fakeModules {
	return &fakeModules{byID: make(map[primitive.ObjectID]models.Module)}
}

func (f *fakeModules) add(title string, examsCount int) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.byID[id] = models.Module{ID: id, Title: title, ExamsCount: examsCount}
	return id
}

func (f *fakeModules) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Module, error) {
	m, ok := f.byID[id]
	if !ok {
		return nil, errs.Clone(errs.ErrNotFound, "Module not found")
	}
	return &m, nil
}
