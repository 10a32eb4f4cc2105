package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/ikkim/permit-backend/internal/db"
	"github.com/ikkim/permit-backend/internal/report"
	"github.com/ikkim/permit-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type adminFixture struct {
	db       *gorm.DB
	apps     ApplicationService
	admin    AdminService
	notifier *recordingNotifier
}

func setupAdminServiceTest(t *testing.T) adminFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	notifier := &recordingNotifier{}
	apps := NewApplicationService(testDB, notifier)
	apps.(*applicationService).now = func() time.Time { return fixedNow }
	admin := NewAdminService(testDB, notifier)
	admin.(*adminService).now = func() time.Time { return fixedNow }

	return adminFixture{db: testDB, apps: apps, admin: admin, notifier: notifier}
}

func (f adminFixture) create(t *testing.T, tradeName, taxpayer string) string {
	t.Helper()
	form := testutil.ValidForm()
	form.BusinessInfo.BusinessTradeName = tradeName
	form.TaxpayerInfo.TaxpayerName = taxpayer
	result, err := f.apps.Create(&form)
	require.NoError(t, err)
	return result.ApplicationID
}

func (f adminFixture) row(t *testing.T, applicationID string) model.ApplicationSummary {
	t.Helper()
	list, err := f.admin.List("")
	require.NoError(t, err)
	for _, row := range list.Applications {
		if row.ApplicationID == applicationID {
			return row
		}
	}
	t.Fatalf("application %s not listed", applicationID)
	return model.ApplicationSummary{}
}

func TestFilterApplications(t *testing.T) {
	rows := []model.ApplicationSummary{
		{BusinessTradeName: "Santos Bakery", TaxpayerName: "Maria Santos"},
		{BusinessTradeName: "Lim Hardware", TaxpayerName: "Ana Lim", Application: model.Application{MayorPermitNo: "MP-77"}},
	}

	assert.Len(t, FilterApplications(rows, ""), 2)
	assert.Len(t, FilterApplications(rows, "  "), 2)
	assert.Len(t, FilterApplications(rows, "BAKERY"), 1)
	assert.Len(t, FilterApplications(rows, "ana"), 1)
	assert.Len(t, FilterApplications(rows, "mp-77"), 1)
	assert.Empty(t, FilterApplications(rows, "pharmacy"))
}

func TestAdminService_ListStatsCoverAllRows(t *testing.T) {
	f := setupAdminServiceTest(t)

	bakery := f.create(t, "Santos Bakery", "Maria Santos")
	f.create(t, "Lim Hardware", "Ana Lim")
	f.create(t, "Cruz Pharmacy", "Jose Cruz")

	require.NoError(t, f.db.Model(&model.Application{}).
		Where("application_id = ?", bakery).
		Updates(map[string]interface{}{
			"permit_date_of_release": "2024-05-10",
			"permit_time_of_release": "10:00",
		}).Error)

	list, err := f.admin.List("hardware")
	require.NoError(t, err)
	require.Len(t, list.Applications, 1)
	assert.Equal(t, "Lim Hardware", list.Applications[0].BusinessTradeName)
	assert.Equal(t, model.ApplicationStats{Total: 3, Processing: 2, Ready: 1}, list.Stats)
}

func TestAdminService_Update(t *testing.T) {
	f := setupAdminServiceTest(t)
	id := f.create(t, "Santos Bakery", "Maria Santos")

	row := f.row(t, id)
	row.BusinessTradeName = "Santos Bakeshop"
	row.TaxpayerName = "Maria C. Santos"
	row.PermitDateOfRelease = model.StringPtr("2024-05-10")
	row.PermitTimeOfRelease = model.StringPtr("10:00")
	row.PermitReleasedBy = model.StringPtr("Clerk")
	row.BusinessPlateNo = "tampered"

	require.NoError(t, f.admin.Update(&row))

	after := f.row(t, id)
	assert.Equal(t, "Santos Bakeshop", after.BusinessTradeName)
	assert.Equal(t, "Maria C. Santos", after.TaxpayerName)
	assert.Equal(t, "Clerk", model.StringValue(after.PermitReleasedBy))
	assert.NotEqual(t, "tampered", after.BusinessPlateNo)
	assert.Contains(t, f.notifier.Events(), EventApplicationUpdated)
}

func TestAdminService_UpdateErrors(t *testing.T) {
	f := setupAdminServiceTest(t)
	id := f.create(t, "Santos Bakery", "Maria Santos")

	t.Run("validation", func(t *testing.T) {
		row := f.row(t, id)
		row.TaxpayerName = ""
		row.BusinessTelephoneNo = "abc"
		err := f.admin.Update(&row)

		var fields FieldErrors
		require.ErrorAs(t, err, &fields)
		assert.Contains(t, fields, "taxpayer_name")
		assert.Contains(t, fields, "business_telephone_no")
	})

	t.Run("unknown application", func(t *testing.T) {
		row := f.row(t, id)
		row.ApplicationID = "missing"
		assert.ErrorIs(t, f.admin.Update(&row), ErrApplicationNotFound)
	})

	t.Run("unknown taxpayer rolls back", func(t *testing.T) {
		row := f.row(t, id)
		row.TaxpayerID = "missing"
		row.BusinessTradeName = "Should Not Stick"
		assert.ErrorIs(t, f.admin.Update(&row), ErrTaxpayerNotFound)
		assert.Equal(t, "Santos Bakery", f.row(t, id).BusinessTradeName)
	})
}

func TestAdminService_Delete(t *testing.T) {
	f := setupAdminServiceTest(t)
	id := f.create(t, "Santos Bakery", "Maria Santos")

	require.NoError(t, f.admin.Delete(id))

	var apps, reviews int64
	f.db.Model(&model.Application{}).Count(&apps)
	f.db.Model(&model.OfficeReview{}).Count(&reviews)
	assert.Zero(t, apps)
	assert.Zero(t, reviews)
	assert.Contains(t, f.notifier.Events(), EventApplicationDeleted)

	assert.ErrorIs(t, f.admin.Delete(id), ErrApplicationNotFound)
	assert.ErrorIs(t, f.admin.Delete(""), ErrApplicationIDRequired)
}

func TestAdminService_ExportAndImport(t *testing.T) {
	f := setupAdminServiceTest(t)
	f.create(t, "Santos Bakery", "Maria Santos")
	f.create(t, "Lim Hardware", "Ana Lim")

	var buf bytes.Buffer
	n, err := f.admin.Export(&buf, "bakery")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rows, skipped, err := report.Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, rows, 1)
	assert.Equal(t, "Santos Bakery", rows[0].BusinessTradeName)

	target := setupAdminServiceTest(t)
	result, err := target.admin.Import(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Empty(t, result.Skipped)

	list, err := target.admin.List("")
	require.NoError(t, err)
	require.Len(t, list.Applications, 1)
	imported := list.Applications[0]
	assert.Equal(t, "Santos Bakery", imported.BusinessTradeName)
	assert.Equal(t, "Maria Santos", imported.TaxpayerName)
	assert.Equal(t, rows[0].BusinessPlateNo, imported.BusinessPlateNo)
	assert.NotEqual(t, rows[0].ApplicationID, imported.ApplicationID)
}

func TestAdminService_ImportSkipsInvalidRows(t *testing.T) {
	f := setupAdminServiceTest(t)

	valid := model.NewApplicationSummary(&model.Application{})
	valid.TaxpayerName = "Ana Lim"
	valid.TaxpayerAddress = "3 Mabini St"
	valid.TaxpayerTelephoneNo = "0917 555 0101"
	valid.TaxpayerBarangayNo = "8"
	valid.BusinessTelephoneNo = "0917 555 0102"
	valid.CommercialAddressBarangayNo = "8"
	valid.BusinessTradeName = "Lim Hardware"
	valid.BusinessCapital = 50000
	valid.BusinessOwnershipType = model.OwnershipSoleProprietorship

	invalid := valid
	invalid.TaxpayerName = ""

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, []model.ApplicationSummary{valid, invalid}))

	result, err := f.admin.Import(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, 3, result.Skipped[0].Row)

	list, err := f.admin.List("")
	require.NoError(t, err)
	require.Len(t, list.Applications, 1)
	app := list.Applications[0]
	assert.Equal(t, "2024-05-02", app.DateOfApplication)
	assert.Equal(t, model.ApplicationFee, app.AmountPaid)
	assert.NotEmpty(t, app.BusinessPlateNo)
	assert.Regexp(t, `^BAN-2024-\d{6}$`, app.BusinessAccountNo)
}

func TestAdminService_RenewalsDue(t *testing.T) {
	f := setupAdminServiceTest(t)

	due := f.create(t, "Santos Bakery", "Maria Santos")
	later := f.create(t, "Lim Hardware", "Ana Lim")
	f.create(t, "Cruz Pharmacy", "Jose Cruz")

	setDate := func(id, date string) {
		require.NoError(t, f.db.Model(&model.Application{}).
			Where("application_id = ?", id).
			Updates(map[string]interface{}{
				"date_of_application":   date,
				"official_receipt_date": date,
			}).Error)
	}
	setDate(due, "2023-05-10")
	setDate(later, "2023-07-01")

	rows, err := f.admin.RenewalsDue(30)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, due, rows[0].ApplicationID)
	assert.Equal(t, "Santos Bakery", rows[0].BusinessTradeName)
}

func TestAdminService_RenewalsDueAfterRenewal(t *testing.T) {
	f := setupAdminServiceTest(t)
	id := f.create(t, "Santos Bakery", "Maria Santos")

	scanAt := func(at time.Time) []model.ApplicationSummary {
		t.Helper()
		f.admin.(*adminService).now = func() time.Time { return at }
		rows, err := f.admin.RenewalsDue(30)
		require.NoError(t, err)
		return rows
	}

	firstYear := fixedNow.AddDate(1, 0, -12)
	require.Len(t, scanAt(firstYear), 1)

	prior, err := f.apps.RenewSearch(mustAccountNo(t, f.apps, id))
	require.NoError(t, err)
	renewal := *prior
	renewal.ApplicationInfo.BarangayClearanceFileURL = "applications/new-clearance.pdf"
	renewal.ApplicationInfo.MayorPermitNo = "MP-2025-0001"
	renewal.OfficeReviews = testutil.CompleteReviews()
	f.apps.(*applicationService).now = func() time.Time { return fixedNow.AddDate(1, 0, 0) }
	_, err = f.apps.Renew(prior.BusinessInfo.BusinessAccountNo, &renewal)
	require.NoError(t, err)

	assert.Empty(t, scanAt(firstYear))

	rows := scanAt(fixedNow.AddDate(2, 0, -12))
	require.Len(t, rows, 1)
	assert.Equal(t, id, rows[0].ApplicationID)
}
