package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SequenceRepoMongoDB implementa SequenceGenerator sobre la colección
// "counters". La atomicidad del incremento la da el findAndModify del
// propio MongoDB: no hay locking a nivel de aplicación, y N llamadas
// concurrentes reciben N valores distintos.
type SequenceRepoMongoDB struct {
	countersColl *mongo.Collection
}

func NewSequenceRepoMongoDB(client *mongo.Client, dbName string) *SequenceRepoMongoDB {
	return &SequenceRepoMongoDB{
		countersColl: client.Database(dbName).Collection("counters"),
	}
}

type mongoSequence struct {
	ID            string `bson:"_id"`
	SequenceValue int64  `bson:"sequenceValue"`
}

// Next incrementa el contador y devuelve el nuevo valor. Con upsert, un
// contador inexistente nace ya incrementado: el primer valor es 1.
func (r *SequenceRepoMongoDB) Next(ctx context.Context, name string) (int64, error) {
	res := r.countersColl.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"sequenceValue": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)

	var seq mongoSequence
	if err := res.Decode(&seq); err != nil {
		// Resultado ausente tras un upsert: fallback documentado, se
		// asume el primer valor.
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 1, nil
		}
		return 0, err
	}
	return seq.SequenceValue, nil
}
