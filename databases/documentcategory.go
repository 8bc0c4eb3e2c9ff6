package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carelinehq/telehealth-api/models"
)

const documentCategoryName = "documentcategories"

// DocumentCategoryDatabase contains the methods to use with the document
// category collection
type DocumentCategoryDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.DocumentCategory, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.DocumentCategory, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	FindOneAndUpdate(context.Context, interface{}, interface{}, ...*options.FindOneAndUpdateOptions) (*models.DocumentCategory, error)
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) (int64, error)
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
}

type documentCategoryDatabase struct {
	db DatabaseHelper
}

// NewDocumentCategoryDatabase initializes a new instance of document category
// database with the provided db connection
func NewDocumentCategoryDatabase(db DatabaseHelper) DocumentCategoryDatabase {
	return &documentCategoryDatabase{
		db: db,
	}
}

func (d *documentCategoryDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.DocumentCategory, error) {
	documentCategory := &models.DocumentCategory{}
	err := d.db.Collection(documentCategoryName).FindOne(ctx, filter, opts...).Decode(&documentCategory)
	if err != nil {
		return nil, err
	}
	return documentCategory, nil
}

func (d *documentCategoryDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.DocumentCategory, error) {
	var documentCategories []models.DocumentCategory
	cur, err := d.db.Collection(documentCategoryName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&documentCategories)
	if err != nil {
		return nil, err
	}
	return documentCategories, nil
}

func (d *documentCategoryDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return d.db.Collection(documentCategoryName).InsertOne(ctx, document, opts...)
}

func (d *documentCategoryDatabase) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) (*models.DocumentCategory, error) {
	documentCategory := &models.DocumentCategory{}
	err := d.db.Collection(documentCategoryName).FindOneAndUpdate(ctx, filter, update, opts...).Decode(&documentCategory)
	if err != nil {
		return nil, err
	}
	return documentCategory, nil
}

func (d *documentCategoryDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error) {
	return d.db.Collection(documentCategoryName).DeleteOne(ctx, filter, opts...)
}

func (d *documentCategoryDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return d.db.Collection(documentCategoryName).CountDocuments(ctx, filter, opts...)
}
