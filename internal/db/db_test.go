package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTables(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	status := CheckTables(testDB)
	assert.True(t, status.Ready)
	assert.Equal(t, map[string]bool{
		"taxpayer_info":             true,
		"business_info":             true,
		"business_application_info": true,
		"reviewed_by_office":        true,
	}, status.Tables)

	require.NoError(t, testDB.Migrator().DropTable("reviewed_by_office"))
	status = CheckTables(testDB)
	assert.False(t, status.Ready)
	assert.False(t, status.Tables["reviewed_by_office"])
}

func TestTruncateAllTables(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	require.NoError(t, testDB.Exec("INSERT INTO taxpayer_info (taxpayer_id, taxpayer_name, taxpayer_telephone_no, taxpayer_address, taxpayer_barangay_no) VALUES ('t1','A','1','B','2')").Error)
	require.NoError(t, TruncateAllTables(testDB))

	var count int64
	require.NoError(t, testDB.Table("taxpayer_info").Count(&count).Error)
	assert.Zero(t, count)
}
