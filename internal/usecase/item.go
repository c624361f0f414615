package usecase

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/todolist/internal/domain"
)

var tracer = otel.Tracer("usecase")

type ItemUsecase struct {
	config     domain.Config
	items      ItemRepository
	categories CategoryRepository
	links      CategoryItemRepository
	events     EventPublisher
}

func NewItemUsecase(
	config domain.Config,
	items ItemRepository,
	categories CategoryRepository,
	links CategoryItemRepository,
	events EventPublisher,
) *ItemUsecase {
	return &ItemUsecase{
		config:     config,
		items:      items,
		categories: categories,
		links:      links,
		events:     events,
	}
}

// List returns every item, or only those whose description contains search.
func (uc *ItemUsecase) List(ctx context.Context, search string) ([]domain.Item, error) {
	ctx, span := tracer.Start(ctx, "Item.Usecase.List")
	defer span.End()
	span.SetAttributes(attribute.String("search", search))

	items, err := uc.items.List(ctx, search)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return items, nil
}

func (uc *ItemUsecase) CreateForm(ctx context.Context) (domain.ItemForm, error) {
	ctx, span := tracer.Start(ctx, "Item.Usecase.CreateForm")
	defer span.End()

	options, err := uc.categories.Options(ctx)
	if err != nil {
		span.RecordError(err)
		return domain.ItemForm{}, err
	}
	return domain.ItemForm{Categories: options}, nil
}

// Create stores item and, when categoryID is non-zero, tags it with that category.
// The returned id is valid even if linking fails.
func (uc *ItemUsecase) Create(ctx context.Context, item domain.Item, categoryID int64) (int64, error) {
	ctx, span := tracer.Start(ctx, "Item.Usecase.Create")
	defer span.End()

	if categoryID < 0 {
		return 0, domain.ValidationError{Field: "categoryId", Reason: "must not be negative"}
	}

	item.ID = 0
	created, err := uc.items.Create(ctx, item)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	span.SetAttributes(attribute.Int64("item", created.ID))
	uc.publish(ctx, domain.ItemEvent{Type: domain.EventItemCreated, ItemID: created.ID})

	if err := uc.linkCategory(ctx, created.ID, categoryID); err != nil {
		span.RecordError(err)
		return created.ID, err
	}
	return created.ID, nil
}

// GetDetails returns the item with its categories resolved.
func (uc *ItemUsecase) GetDetails(ctx context.Context, id int64) (domain.ItemDetails, error) {
	ctx, span := tracer.Start(ctx, "Item.Usecase.GetDetails")
	defer span.End()
	span.SetAttributes(attribute.Int64("item", id))

	details, err := uc.items.GetWithCategories(ctx, id)
	if err != nil {
		span.RecordError(err)
		return domain.ItemDetails{}, err
	}
	return details, nil
}

func (uc *ItemUsecase) GetForEdit(ctx context.Context, id int64) (domain.ItemForm, error) {
	ctx, span := tracer.Start(ctx, "Item.Usecase.GetForEdit")
	defer span.End()

	return uc.form(ctx, id)
}

// Edit overwrites every field of the stored item, then applies the category link.
func (uc *ItemUsecase) Edit(ctx context.Context, item domain.Item, categoryID int64) error {
	ctx, span := tracer.Start(ctx, "Item.Usecase.Edit")
	defer span.End()
	span.SetAttributes(attribute.Int64("item", item.ID))

	if err := validateTarget(item.ID, categoryID); err != nil {
		return err
	}

	if err := uc.items.Update(ctx, item); err != nil {
		span.RecordError(err)
		return err
	}
	uc.publish(ctx, domain.ItemEvent{Type: domain.EventItemUpdated, ItemID: item.ID})

	if err := uc.linkCategory(ctx, item.ID, categoryID); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (uc *ItemUsecase) AddCategoryForm(ctx context.Context, id int64) (domain.ItemForm, error) {
	ctx, span := tracer.Start(ctx, "Item.Usecase.AddCategoryForm")
	defer span.End()

	return uc.form(ctx, id)
}

// AddCategory links the item to categoryID without touching the item's fields.
func (uc *ItemUsecase) AddCategory(ctx context.Context, item domain.Item, categoryID int64) error {
	ctx, span := tracer.Start(ctx, "Item.Usecase.AddCategory")
	defer span.End()
	span.SetAttributes(attribute.Int64("item", item.ID), attribute.Int64("category", categoryID))

	if err := validateTarget(item.ID, categoryID); err != nil {
		return err
	}

	if _, err := uc.items.Get(ctx, item.ID); err != nil {
		span.RecordError(err)
		return err
	}

	if err := uc.linkCategory(ctx, item.ID, categoryID); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (uc *ItemUsecase) GetForDelete(ctx context.Context, id int64) (domain.Item, error) {
	ctx, span := tracer.Start(ctx, "Item.Usecase.GetForDelete")
	defer span.End()

	item, err := uc.items.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return domain.Item{}, err
	}
	return item, nil
}

// DeleteConfirmed removes the item; its category links go with it.
func (uc *ItemUsecase) DeleteConfirmed(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "Item.Usecase.DeleteConfirmed")
	defer span.End()
	span.SetAttributes(attribute.Int64("item", id))

	if err := uc.items.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}
	uc.publish(ctx, domain.ItemEvent{Type: domain.EventItemDeleted, ItemID: id})
	return nil
}

// DeleteCategoryLink removes a single item/category link.
func (uc *ItemUsecase) DeleteCategoryLink(ctx context.Context, joinID int64) error {
	ctx, span := tracer.Start(ctx, "Item.Usecase.DeleteCategoryLink")
	defer span.End()
	span.SetAttributes(attribute.Int64("join", joinID))

	link, err := uc.links.Delete(ctx, joinID)
	if err != nil {
		span.RecordError(err)
		return err
	}
	uc.publish(ctx, domain.ItemEvent{
		Type:       domain.EventCategoryUnlinked,
		ItemID:     link.ItemID,
		CategoryID: link.CategoryID,
		JoinID:     link.ID,
	})
	return nil
}

func (uc *ItemUsecase) form(ctx context.Context, id int64) (domain.ItemForm, error) {
	item, err := uc.items.Get(ctx, id)
	if err != nil {
		return domain.ItemForm{}, err
	}

	options, err := uc.categories.Options(ctx)
	if err != nil {
		return domain.ItemForm{}, err
	}

	return domain.ItemForm{Item: item, Categories: options}, nil
}

// linkCategory is a no-op for categoryID 0.
func (uc *ItemUsecase) linkCategory(ctx context.Context, itemID, categoryID int64) error {
	if categoryID == 0 {
		return nil
	}

	if uc.config.DedupeCategoryLinks {
		exists, err := uc.links.Exists(ctx, categoryID, itemID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
	}

	link, err := uc.links.Link(ctx, categoryID, itemID)
	if err != nil {
		return err
	}

	uc.publish(ctx, domain.ItemEvent{
		Type:       domain.EventCategoryLinked,
		ItemID:     itemID,
		CategoryID: categoryID,
		JoinID:     link.ID,
	})
	return nil
}

// publish never fails the caller: the write it reports has already been committed.
func (uc *ItemUsecase) publish(ctx context.Context, event domain.ItemEvent) {
	if uc.events == nil {
		return
	}
	event.At = time.Now().UTC()
	if err := uc.events.Publish(ctx, event); err != nil {
		slog.WarnContext(
			ctx, "failed to publish item event",
			slog.String("type", string(event.Type)),
			slog.String("error", err.Error()),
			slog.String("module", "item"),
		)
	}
}

func validateTarget(itemID, categoryID int64) error {
	if itemID <= 0 {
		return domain.ValidationError{Field: "id", Reason: "is required"}
	}
	if categoryID < 0 {
		return domain.ValidationError{Field: "categoryId", Reason: "must not be negative"}
	}
	return nil
}
