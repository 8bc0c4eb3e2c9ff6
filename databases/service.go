package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carelinehq/telehealth-api/models"
)

const serviceName = "services"

// ServiceDatabase contains the methods to use with the service collection
type ServiceDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.Service, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Service, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	FindOneAndUpdate(context.Context, interface{}, interface{}, ...*options.FindOneAndUpdateOptions) (*models.Service, error)
}

type serviceDatabase struct {
	db DatabaseHelper
}

// NewServiceDatabase initializes a new instance of service database with the
// provided db connection
func NewServiceDatabase(db DatabaseHelper) ServiceDatabase {
	return &serviceDatabase{
		db: db,
	}
}

func (s *serviceDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Service, error) {
	service := &models.Service{}
	err := s.db.Collection(serviceName).FindOne(ctx, filter, opts...).Decode(&service)
	if err != nil {
		return nil, err
	}
	return service, nil
}

func (s *serviceDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Service, error) {
	var services []models.Service
	cur, err := s.db.Collection(serviceName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&services)
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (s *serviceDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return s.db.Collection(serviceName).InsertOne(ctx, document, opts...)
}

func (s *serviceDatabase) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) (*models.Service, error) {
	service := &models.Service{}
	err := s.db.Collection(serviceName).FindOneAndUpdate(ctx, filter, update, opts...).Decode(&service)
	if err != nil {
		return nil, err
	}
	return service, nil
}
