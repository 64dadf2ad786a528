package jobs

import (
	"log"
	"time"

	"sportloan.GO/config"
	"sportloan.GO/cron"
	"sportloan.GO/service/report"
)

func init() {
	cron.Register("overduescan", "@every 15m", OverdueScanJob)
}

// OverdueScanJob logs every open borrowal past its due date and rewarms the
// dashboard cache while it is at it.
func OverdueScanJob(args ...string) {
	db, err := config.NewDB()
	if err != nil {
		log.Printf("overduescan: database connection failed: %v", err)
		return
	}
	svc := report.NewReportService(db)

	overdue, err := svc.Overdue(time.Now())
	if err != nil {
		log.Printf("overduescan: %v", err)
		return
	}
	for _, b := range overdue {
		log.Printf("overduescan: borrowal %d (%s) due %s still open",
			b.BorrowalID, b.BorrowerName, b.DueAt.Format("2006-01-02 15:04"))
	}
	if len(overdue) == 0 {
		log.Println("overduescan: no overdue borrowals")
	}

	if _, err := svc.RefreshDashboard(); err != nil {
		log.Printf("overduescan: dashboard refresh: %v", err)
	}
}
