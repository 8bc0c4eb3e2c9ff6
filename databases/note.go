package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carelinehq/telehealth-api/models"
)

const noteName = "notes"

// NoteDatabase contains the methods to use with the note collection
type NoteDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.Note, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Note, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	FindOneAndUpdate(context.Context, interface{}, interface{}, ...*options.FindOneAndUpdateOptions) (*models.Note, error)
}

type noteDatabase struct {
	db DatabaseHelper
}

// NewNoteDatabase initializes a new instance of note database with the
// provided db connection
func NewNoteDatabase(db DatabaseHelper) NoteDatabase {
	return &noteDatabase{
		db: db,
	}
}

func (n *noteDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Note, error) {
	note := &models.Note{}
	err := n.db.Collection(noteName).FindOne(ctx, filter, opts...).Decode(&note)
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (n *noteDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Note, error) {
	var notes []models.Note
	cur, err := n.db.Collection(noteName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&notes)
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (n *noteDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return n.db.Collection(noteName).InsertOne(ctx, document, opts...)
}

func (n *noteDatabase) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) (*models.Note, error) {
	note := &models.Note{}
	err := n.db.Collection(noteName).FindOneAndUpdate(ctx, filter, update, opts...).Decode(&note)
	if err != nil {
		return nil, err
	}
	return note, nil
}
