package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carelinehq/telehealth-api/models"
)

const categoryName = "categories"

// CategoryDatabase contains the methods to use with the category collection
type CategoryDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.Category, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Category, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	FindOneAndUpdate(context.Context, interface{}, interface{}, ...*options.FindOneAndUpdateOptions) (*models.Category, error)
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
}

type categoryDatabase struct {
	db DatabaseHelper
}

// NewCategoryDatabase initializes a new instance of category database with the
// provided db connection
func NewCategoryDatabase(db DatabaseHelper) CategoryDatabase {
	return &categoryDatabase{
		db: db,
	}
}

func (c *categoryDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Category, error) {
	category := &models.Category{}
	err := c.db.Collection(categoryName).FindOne(ctx, filter, opts...).Decode(&category)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (c *categoryDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Category, error) {
	var categories []models.Category
	cur, err := c.db.Collection(categoryName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&categories)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *categoryDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(categoryName).InsertOne(ctx, document, opts...)
}

func (c *categoryDatabase) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) (*models.Category, error) {
	category := &models.Category{}
	err := c.db.Collection(categoryName).FindOneAndUpdate(ctx, filter, update, opts...).Decode(&category)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (c *categoryDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(categoryName).CountDocuments(ctx, filter, opts...)
}
