package graphqlserver

import (
	"time"

	gqlmodels "sportloan.GO/graphql/models"
	borrowEntity "sportloan.GO/model/entity/borrow"
	equipmentEntity "sportloan.GO/model/entity/equipment"
)

func mapItem(it *equipmentEntity.Item) *gqlmodels.Item {
	return &gqlmodels.Item{
		ItemID:        int32(it.ItemID),
		CatalogNumber: it.CatalogNumber,
		Name:          it.Name,
		TypeID:        int32(it.TypeID),
		Detail:        it.Detail,
		Stock:         int32(it.Stock),
		Price:         it.Price,
		PhotoRef:      it.PhotoRef,
	}
}

func statusName(s borrowEntity.Status) string {
	if s == borrowEntity.StatusReturned {
		return "returned"
	}
	return "open"
}

func mapBorrowal(b *borrowEntity.Borrowal) *gqlmodels.Borrowal {
	out := &gqlmodels.Borrowal{
		BorrowalID:     int32(b.BorrowalID),
		Ref:            b.Ref,
		MemberIdentity: b.MemberIdentity,
		BorrowerName:   b.BorrowerName,
		ApproverName:   b.ApproverName,
		Note:           b.Note,
		Advisor:        b.Advisor,
		Status:         statusName(b.Status),
		DueAt:          b.DueAt.Format(time.RFC3339),
		CreatedAt:      b.CreatedAt.Format(time.RFC3339),
	}
	if b.ReturnedAt != nil {
		ra := b.ReturnedAt.Format(time.RFC3339)
		out.ReturnedAt = &ra
	}
	for i := range b.Lines {
		l := b.Lines[i]
		out.Lines = append(out.Lines, &gqlmodels.Line{
			LineID:      int32(l.LineID),
			ItemID:      int32(l.ItemID),
			BorrowedQty: int32(l.BorrowedQty),
			ReturnedQty: int32(l.ReturnedQty),
			Status:      statusName(l.Status),
		})
	}
	if out.Lines == nil {
		out.Lines = []*gqlmodels.Line{}
	}
	return out
}
