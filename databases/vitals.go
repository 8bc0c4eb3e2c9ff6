package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carelinehq/telehealth-api/models"
)

const vitalsName = "vitals"

// VitalsDatabase contains the methods to use with the vitals collection
type VitalsDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.Vitals, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Vitals, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	FindOneAndUpdate(context.Context, interface{}, interface{}, ...*options.FindOneAndUpdateOptions) (*models.Vitals, error)
}

type vitalsDatabase struct {
	db DatabaseHelper
}

// NewVitalsDatabase initializes a new instance of vitals database with the
// provided db connection
func NewVitalsDatabase(db DatabaseHelper) VitalsDatabase {
	return &vitalsDatabase{
		db: db,
	}
}

func (v *vitalsDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Vitals, error) {
	vitals := &models.Vitals{}
	err := v.db.Collection(vitalsName).FindOne(ctx, filter, opts...).Decode(&vitals)
	if err != nil {
		return nil, err
	}
	return vitals, nil
}

func (v *vitalsDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Vitals, error) {
	var vitals []models.Vitals
	cur, err := v.db.Collection(vitalsName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&vitals)
	if err != nil {
		return nil, err
	}
	return vitals, nil
}

func (v *vitalsDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return v.db.Collection(vitalsName).InsertOne(ctx, document, opts...)
}

func (v *vitalsDatabase) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) (*models.Vitals, error) {
	vitals := &models.Vitals{}
	err := v.db.Collection(vitalsName).FindOneAndUpdate(ctx, filter, update, opts...).Decode(&vitals)
	if err != nil {
		return nil, err
	}
	return vitals, nil
}
