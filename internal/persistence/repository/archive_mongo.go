package repository

import (
	"context"

	"github.com/parleychat/parley/internal/domain"
	"github.com/parleychat/parley/internal/persistence/db"
	"go.mongodb.org/mongo-driver/mongo"
)

type chatArchiveRepository struct {
	db *mongo.Database
}

func NewChatArchiveRepository(database *mongo.Database) domain.ArchiveRepository {
	return &chatArchiveRepository{
		db: database,
	}
}

func (r *chatArchiveRepository) Insert(ctx context.Context, record *domain.ArchiveRecord) error {
	collection := r.db.Collection(db.ChatsCollection)

	_, err := collection.InsertOne(ctx, record)
	return err
}
