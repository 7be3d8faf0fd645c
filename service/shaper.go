package service

import "nexusconnect-backend/models"

// NormalizePublic fills the defaults every client relies on.
func NormalizePublic(p *models.EntrepreneurPublic) *models.EntrepreneurPublic {
	if p == nil {
		return nil
	}
	if p.Status == "" {
		p.Status = models.StatusDraft
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Portfolio == nil {
		p.Portfolio = models.Portfolio{}
	}
	return p
}

// NormalizeProfile is NormalizePublic for the owner view.
func NormalizeProfile(p *models.EntrepreneurProfile) *models.EntrepreneurProfile {
	if p == nil {
		return nil
	}
	NormalizePublic(&p.EntrepreneurPublic)
	return p
}
