package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carelinehq/telehealth-api/models"
)

const quickResponseName = "quickresponses"

// QuickResponseDatabase contains the methods to use with the quick response
// collection
type QuickResponseDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.QuickResponse, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.QuickResponse, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	FindOneAndUpdate(context.Context, interface{}, interface{}, ...*options.FindOneAndUpdateOptions) (*models.QuickResponse, error)
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) (int64, error)
}

type quickResponseDatabase struct {
	db DatabaseHelper
}

// NewQuickResponseDatabase initializes a new instance of quick response
// database with the provided db connection
func NewQuickResponseDatabase(db DatabaseHelper) QuickResponseDatabase {
	return &quickResponseDatabase{
		db: db,
	}
}

func (q *quickResponseDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.QuickResponse, error) {
	quickResponse := &models.QuickResponse{}
	err := q.db.Collection(quickResponseName).FindOne(ctx, filter, opts...).Decode(&quickResponse)
	if err != nil {
		return nil, err
	}
	return quickResponse, nil
}

func (q *quickResponseDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.QuickResponse, error) {
	var quickResponses []models.QuickResponse
	cur, err := q.db.Collection(quickResponseName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&quickResponses)
	if err != nil {
		return nil, err
	}
	return quickResponses, nil
}

func (q *quickResponseDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return q.db.Collection(quickResponseName).InsertOne(ctx, document, opts...)
}

func (q *quickResponseDatabase) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) (*models.QuickResponse, error) {
	quickResponse := &models.QuickResponse{}
	err := q.db.Collection(quickResponseName).FindOneAndUpdate(ctx, filter, update, opts...).Decode(&quickResponse)
	if err != nil {
		return nil, err
	}
	return quickResponse, nil
}

func (q *quickResponseDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error) {
	return q.db.Collection(quickResponseName).DeleteOne(ctx, filter, opts...)
}
