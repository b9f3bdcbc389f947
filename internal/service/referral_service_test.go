package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediflow-ai/mediflow/internal/domain/patient"
	"github.com/mediflow-ai/mediflow/internal/domain/referral"
)

func TestCreateReferral(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPatient(t)

	_, err := f.referrals.CreateReferral(ctx, &referral.CreateReferralCommand{
		PatientID: p.ID,
	}, "dr.reyes")
	assert.ErrorIs(t, err, referral.ErrSpecialistRequired)

	_, err = f.referrals.CreateReferral(ctx, &referral.CreateReferralCommand{
		PatientID:  "missing",
		Specialist: "cardiology",
	}, "dr.reyes")
	assert.ErrorIs(t, err, patient.ErrPatientNotFound)

	r, err := f.referrals.CreateReferral(ctx, &referral.CreateReferralCommand{
		PatientID:  p.ID,
		Specialist: " cardiology ",
		Reason:     "murmur on exam",
	}, "dr.reyes")
	require.NoError(t, err)
	assert.Equal(t, "cardiology", r.Specialist)
	assert.Equal(t, referral.StatusPending, r.Status)
}

func TestUpdateReferral(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPatient(t)

	r, err := f.referrals.CreateReferral(ctx, &referral.CreateReferralCommand{
		PatientID:  p.ID,
		Specialist: "cardiology",
	}, "dr.reyes")
	require.NoError(t, err)

	empty := "  "
	_, err = f.referrals.UpdateReferral(ctx, r.ID, &referral.UpdateReferralCommand{Specialist: &empty}, "dr.reyes")
	assert.ErrorIs(t, err, referral.ErrSpecialistRequired)

	status := referral.StatusScheduled
	updated, err := f.referrals.UpdateReferral(ctx, r.ID, &referral.UpdateReferralCommand{Status: &status}, "dr.reyes")
	require.NoError(t, err)
	assert.Equal(t, referral.StatusScheduled, updated.Status)
	assert.Equal(t, "cardiology", updated.Specialist)

	_, err = f.referrals.UpdateReferral(ctx, 99, &referral.UpdateReferralCommand{Status: &status}, "dr.reyes")
	assert.ErrorIs(t, err, referral.ErrReferralNotFound)
}
