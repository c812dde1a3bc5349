package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
)

type taskDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"titulo"`
	Description string             `bson:"descricao,omitempty"`
	Status      string             `bson:"status"`
	DueDate     time.Time          `bson:"dataLimite"`
	CompletedAt *time.Time         `bson:"dataConclusao"`
	OwnerID     primitive.ObjectID `bson:"usuario"`
	CreatedAt   time.Time          `bson:"data_criacao"`
	UpdatedAt   time.Time          `bson:"data_ultima_atualizacao"`
}

type userDocument struct {
	ID                 primitive.ObjectID `bson:"_id"`
	Name               string             `bson:"nome"`
	Handle             string             `bson:"apelido"`
	Email              string             `bson:"email"`
	SecretHash         string             `bson:"senha"`
	SecurityAnswerHash string             `bson:"respostaSeguranca"`
	Status             string             `bson:"status"`
	CreatedAt          time.Time          `bson:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt"`
}

// BSON datetimes have millisecond precision.
func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func objectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", domain.ErrInvalidID, hex)
	}
	return id, nil
}

func newTaskDocument(t *domain.Task, now time.Time) (*taskDocument, error) {
	id := primitive.NewObjectID()
	if t.ID != "" {
		var err error
		if id, err = objectID(t.ID); err != nil {
			return nil, err
		}
	}
	owner, err := objectID(t.OwnerID)
	if err != nil {
		return nil, err
	}

	doc := &taskDocument{
		ID:          id,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		DueDate:     storedTime(t.DueDate),
		OwnerID:     owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.CompletedAt != nil {
		c := storedTime(*t.CompletedAt)
		doc.CompletedAt = &c
	}
	return doc, nil
}

func (d *taskDocument) toDomain() domain.Task {
	t := domain.Task{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Status:      domain.TaskStatus(d.Status),
		DueDate:     d.DueDate.UTC(),
		OwnerID:     d.OwnerID.Hex(),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
	if d.CompletedAt != nil {
		c := d.CompletedAt.UTC()
		t.CompletedAt = &c
	}
	return t
}

// taskUpdate renders a patch as a $set document. The update timestamp is
// always set, so the document is never empty.
func taskUpdate(p domain.TaskPatch, now time.Time) (bson.M, error) {
	set := bson.M{"data_ultima_atualizacao": now}
	if p.Title != nil {
		set["titulo"] = *p.Title
	}
	if p.Description != nil {
		set["descricao"] = *p.Description
	}
	if p.Status != nil {
		set["status"] = string(*p.Status)
	}
	if p.DueDate != nil {
		set["dataLimite"] = storedTime(*p.DueDate)
	}
	if p.ClearCompletedAt {
		set["dataConclusao"] = nil
	} else if p.CompletedAt != nil {
		set["dataConclusao"] = storedTime(*p.CompletedAt)
	}
	if p.OwnerID != nil {
		owner, err := objectID(*p.OwnerID)
		if err != nil {
			return nil, err
		}
		set["usuario"] = owner
	}
	return bson.M{"$set": set}, nil
}

func newUserDocument(u *domain.User, now time.Time) (*userDocument, error) {
	id := primitive.NewObjectID()
	if u.ID != "" {
		var err error
		if id, err = objectID(u.ID); err != nil {
			return nil, err
		}
	}
	return &userDocument{
		ID:                 id,
		Name:               u.Name,
		Handle:             u.Handle,
		Email:              u.Email,
		SecretHash:         u.SecretHash,
		SecurityAnswerHash: u.SecurityAnswerHash,
		Status:             string(u.Status),
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

func (d *userDocument) toDomain() domain.User {
	return domain.User{
		ID:                 d.ID.Hex(),
		Name:               d.Name,
		Handle:             d.Handle,
		Email:              d.Email,
		SecretHash:         d.SecretHash,
		SecurityAnswerHash: d.SecurityAnswerHash,
		Status:             domain.UserStatus(d.Status),
		CreatedAt:          d.CreatedAt.UTC(),
		UpdatedAt:          d.UpdatedAt.UTC(),
	}
}

func userUpdate(p domain.UserPatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if p.Name != nil {
		set["nome"] = *p.Name
	}
	if p.Handle != nil {
		set["apelido"] = *p.Handle
	}
	if p.Email != nil {
		set["email"] = *p.Email
	}
	if p.SecretHash != nil {
		set["senha"] = *p.SecretHash
	}
	if p.SecurityAnswerHash != nil {
		set["respostaSeguranca"] = *p.SecurityAnswerHash
	}
	if p.Status != nil {
		set["status"] = string(*p.Status)
	}
	return bson.M{"$set": set}
}
