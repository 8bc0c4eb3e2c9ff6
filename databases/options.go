package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carelinehq/telehealth-api/models"
)

// Collection names for the clinical reference-option lists
const (
	medicationOptionName     = "medicationoptions"
	treatmentOptionName      = "treatmentoptions"
	followUpOptionName       = "followupoptions"
	refillReminderOptionName = "refillreminderoptions"
)

// MedicationOptionDatabase contains the methods to use with the medication
// option collection
type MedicationOptionDatabase interface {
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.MedicationOption, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	FindOneAndUpdate(context.Context, interface{}, interface{}, ...*options.FindOneAndUpdateOptions) (*models.MedicationOption, error)
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
}

type medicationOptionDatabase struct {
	db DatabaseHelper
}

// NewMedicationOptionDatabase initializes a new instance of medication option
// database with the provided db connection
func NewMedicationOptionDatabase(db DatabaseHelper) MedicationOptionDatabase {
	return &medicationOptionDatabase{db: db}
}

func (m *medicationOptionDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.MedicationOption, error) {
	var medicationOptions []models.MedicationOption
	cur, err := m.db.Collection(medicationOptionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&medicationOptions)
	if err != nil {
		return nil, err
	}
	return medicationOptions, nil
}

func (m *medicationOptionDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return m.db.Collection(medicationOptionName).InsertOne(ctx, document, opts...)
}

func (m *medicationOptionDatabase) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) (*models.MedicationOption, error) {
	medicationOption := &models.MedicationOption{}
	err := m.db.Collection(medicationOptionName).FindOneAndUpdate(ctx, filter, update, opts...).Decode(&medicationOption)
	if err != nil {
		return nil, err
	}
	return medicationOption, nil
}

func (m *medicationOptionDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return m.db.Collection(medicationOptionName).CountDocuments(ctx, filter, opts...)
}

// TreatmentOptionDatabase contains the methods to use with the treatment
// option collection
type TreatmentOptionDatabase interface {
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.TreatmentOption, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	FindOneAndUpdate(context.Context, interface{}, interface{}, ...*options.FindOneAndUpdateOptions) (*models.TreatmentOption, error)
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
}

type treatmentOptionDatabase struct {
	db DatabaseHelper
}

// NewTreatmentOptionDatabase initializes a new instance of treatment option
// database with the provided db connection
func NewTreatmentOptionDatabase(db DatabaseHelper) TreatmentOptionDatabase {
	return &treatmentOptionDatabase{db: db}
}

func (t *treatmentOptionDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.TreatmentOption, error) {
	var treatmentOptions []models.TreatmentOption
	cur, err := t.db.Collection(treatmentOptionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&treatmentOptions)
	if err != nil {
		return nil, err
	}
	return treatmentOptions, nil
}

func (t *treatmentOptionDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return t.db.Collection(treatmentOptionName).InsertOne(ctx, document, opts...)
}

func (t *treatmentOptionDatabase) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) (*models.TreatmentOption, error) {
	treatmentOption := &models.TreatmentOption{}
	err := t.db.Collection(treatmentOptionName).FindOneAndUpdate(ctx, filter, update, opts...).Decode(&treatmentOption)
	if err != nil {
		return nil, err
	}
	return treatmentOption, nil
}

func (t *treatmentOptionDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return t.db.Collection(treatmentOptionName).CountDocuments(ctx, filter, opts...)
}

// FollowUpOptionDatabase contains the methods to use with the follow-up
// option collection
type FollowUpOptionDatabase interface {
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.FollowUpOption, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	FindOneAndUpdate(context.Context, interface{}, interface{}, ...*options.FindOneAndUpdateOptions) (*models.FollowUpOption, error)
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
}

type followUpOptionDatabase struct {
	db DatabaseHelper
}

// NewFollowUpOptionDatabase initializes a new instance of follow-up option
// database with the provided db connection
func NewFollowUpOptionDatabase(db DatabaseHelper) FollowUpOptionDatabase {
	return &followUpOptionDatabase{db: db}
}

func (f *followUpOptionDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.FollowUpOption, error) {
	var followUpOptions []models.FollowUpOption
	cur, err := f.db.Collection(followUpOptionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&followUpOptions)
	if err != nil {
		return nil, err
	}
	return followUpOptions, nil
}

func (f *followUpOptionDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return f.db.Collection(followUpOptionName).InsertOne(ctx, document, opts...)
}

func (f *followUpOptionDatabase) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) (*models.FollowUpOption, error) {
	followUpOption := &models.FollowUpOption{}
	err := f.db.Collection(followUpOptionName).FindOneAndUpdate(ctx, filter, update, opts...).Decode(&followUpOption)
	if err != nil {
		return nil, err
	}
	return followUpOption, nil
}

func (f *followUpOptionDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return f.db.Collection(followUpOptionName).CountDocuments(ctx, filter, opts...)
}

// RefillReminderOptionDatabase contains the methods to use with the refill
// reminder option collection
type RefillReminderOptionDatabase interface {
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.RefillReminderOption, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	FindOneAndUpdate(context.Context, interface{}, interface{}, ...*options.FindOneAndUpdateOptions) (*models.RefillReminderOption, error)
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
}

type refillReminderOptionDatabase struct {
	db DatabaseHelper
}

// NewRefillReminderOptionDatabase initializes a new instance of refill
// reminder option database with the provided db connection
func NewRefillReminderOptionDatabase(db DatabaseHelper) RefillReminderOptionDatabase {
	return &refillReminderOptionDatabase{db: db}
}

func (r *refillReminderOptionDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.RefillReminderOption, error) {
	var refillReminderOptions []models.RefillReminderOption
	cur, err := r.db.Collection(refillReminderOptionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&refillReminderOptions)
	if err != nil {
		return nil, err
	}
	return refillReminderOptions, nil
}

func (r *refillReminderOptionDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return r.db.Collection(refillReminderOptionName).InsertOne(ctx, document, opts...)
}

func (r *refillReminderOptionDatabase) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) (*models.RefillReminderOption, error) {
	refillReminderOption := &models.RefillReminderOption{}
	err := r.db.Collection(refillReminderOptionName).FindOneAndUpdate(ctx, filter, update, opts...).Decode(&refillReminderOption)
	if err != nil {
		return nil, err
	}
	return refillReminderOption, nil
}

func (r *refillReminderOptionDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return r.db.Collection(refillReminderOptionName).CountDocuments(ctx, filter, opts...)
}
