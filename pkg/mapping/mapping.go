package mapping

import (
	"github.com/chris/tailorshop-ledger/pkg/api"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/workers"
	"github.com/chris/tailorshop-ledger/pkg/workflow"
)

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ToApiOrder converts a domain Order to an API Order. The security code is never included.
func ToApiOrder(o *models.Order) *api.Order {
	return &api.Order{
		Id:               o.Id,
		BillNumber:       o.BillNumber,
		CustomerId:       o.CustomerId,
		CustomerName:     o.CustomerName,
		GarmentType:      o.GarmentType,
		Category:         string(o.Category),
		Price:            o.Price,
		Quality:          string(o.Quality),
		Stage:            string(o.Stage),
		AssignedWorkerId: o.AssignedWorkerId,
		PreviousWorkerId: optional(o.PreviousWorkerId),
		CreatorId:        o.CreatorId,
		Folder:           string(o.Folder),
		HandoverStatus:   string(o.HandoverStatus),
		WorkerHistory:    o.WorkerHistory,
		IsPaid:           o.IsPaid,
		Measurements:     o.Measurements,
		DeliveryDate:     optional(o.DeliveryDate),
		Version:          o.Version,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

// ToDomainNewOrder converts the body of POST /orders to the workflow input.
func ToDomainNewOrder(in *api.NewOrder) workflow.NewOrder {
	return workflow.NewOrder{
		BillNumber:   in.BillNumber,
		CustomerId:   in.CustomerId,
		CustomerName: in.CustomerName,
		GarmentType:  in.GarmentType,
		Category:     models.GarmentCategory(deref(in.Category)),
		Price:        in.Price,
		Quality:      models.Quality(in.Quality),
		CreatorId:    in.CreatorId,
		Measurements: in.Measurements,
		DeliveryDate: deref(in.DeliveryDate),
	}
}

// ToApiTransaction converts a ledger record to an API Transaction.
func ToApiTransaction(tx *models.Transaction) *api.Transaction {
	return &api.Transaction{
		Id:              tx.Id,
		OwnerId:         tx.OwnerId,
		Amount:          tx.Amount,
		Direction:       string(tx.Direction),
		WalletType:      string(tx.WalletType),
		Description:     tx.Description,
		RelatedOrderId:  optional(tx.RelatedOrderId),
		RelatedWorkerId: optional(tx.RelatedWorkerId),
		Level:           optional(tx.Level),
		CreatedAt:       tx.CreatedAt,
	}
}

// ToApiTransactions converts a slice of ledger records.
func ToApiTransactions(txs []models.Transaction) []*api.Transaction {
	out := make([]*api.Transaction, len(txs))
	for i := range txs {
		out[i] = ToApiTransaction(&txs[i])
	}
	return out
}

// ToApiStats converts folded wallet balances.
func ToApiStats(s models.Stats, directs int) *api.Stats {
	return &api.Stats{
		WorkerId:          s.WorkerId,
		BookingWallet:     s.BookingWallet,
		UplineWallet:      s.UplineWallet,
		DownlineWallet:    s.DownlineWallet,
		MagicIncome:       s.MagicIncome,
		TodaysWallet:      s.TodaysWallet,
		PerformanceWallet: s.PerformanceWallet,
		TotalIncome:       s.TotalIncome,
		Directs:           directs,
	}
}

// ToApiRequest converts an approval request.
func ToApiRequest(r *models.Request) *api.Request {
	return &api.Request{
		Id:             r.Id,
		UserId:         r.UserId,
		Type:           api.RequestType(r.Type),
		Amount:         r.Amount,
		Status:         string(r.Status),
		Utr:            optional(r.UTR),
		Method:         optional(r.Method),
		PaymentDetails: optional(r.PaymentDetails),
		TransactionId:  optional(r.TransactionId),
		CreatedAt:      r.CreatedAt,
		DecidedAt:      r.DecidedAt,
	}
}

// ToApiRate converts a stitching rate.
func ToApiRate(r *models.Rate) *api.Rate {
	return &api.Rate{
		Id:          r.Id,
		GarmentType: r.GarmentType,
		Role:        optional(string(r.Role)),
		Normal:      r.Normal,
		Medium:      r.Medium,
		Regular:     r.Regular,
		Vip:         r.VIP,
		RateType:    string(r.RateType),
	}
}

// ToDomainRate converts an API rate to the stored form.
func ToDomainRate(id string, r *api.Rate) *models.Rate {
	return &models.Rate{
		Id:          id,
		GarmentType: r.GarmentType,
		Role:        models.Role(deref(r.Role)),
		Normal:      r.Normal,
		Medium:      r.Medium,
		Regular:     r.Regular,
		VIP:         r.Vip,
		RateType:    models.RateType(r.RateType),
	}
}

// ToApiWorker converts a worker. UPI and bank details are not included.
func ToApiWorker(w *models.Worker) *api.Worker {
	return &api.Worker{
		Id:            w.Id,
		Name:          w.Name,
		Role:          string(w.Role),
		Mobile:        w.Mobile,
		Status:        string(w.Status),
		JoinDate:      w.JoinDate,
		UplineId:      optional(w.UplineId),
		MagicUplineId: optional(w.MagicUplineId),
		CanWithdraw:   w.CanWithdraw,
	}
}

// ToApiWorkers converts a list of workers.
func ToApiWorkers(ws []models.Worker) []*api.Worker {
	out := make([]*api.Worker, len(ws))
	for i := range ws {
		out[i] = ToApiWorker(&ws[i])
	}
	return out
}

// ToDomainRegistration converts the body of POST /workers.
func ToDomainRegistration(in *api.NewWorker) workers.Registration {
	reg := workers.Registration{
		Name:          in.Name,
		Mobile:        in.Mobile,
		Role:          models.Role(in.Role),
		UplineId:      deref(in.UplineId),
		MagicUplineId: deref(in.MagicUplineId),
		UpiId:         deref(in.UpiId),
	}
	if b := in.BankDetails; b != nil {
		reg.BankDetails = &models.BankDetails{
			AccountName:   b.AccountName,
			AccountNumber: b.AccountNumber,
			IFSCCode:      b.IfscCode,
			BankName:      b.BankName,
		}
	}
	return reg
}

// ToDomainUpdate converts the body of PUT /workers/{workerId}.
func ToDomainUpdate(in *api.WorkerUpdate) workers.Update {
	u := workers.Update{
		MagicUplineId: in.MagicUplineId,
		CanWithdraw:   in.CanWithdraw,
	}
	if in.Status != nil {
		status := models.WorkerStatus(*in.Status)
		u.Status = &status
	}
	return u
}
