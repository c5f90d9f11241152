package models

import "testing"

func TestPaginatedResponseComputesTotalPages(t *testing.T) {
	resp := PaginatedResponse(nil, 2, 10, 45)
	if resp.Pagination == nil {
		t.Fatal("pagination block missing")
	}
	if resp.Pagination.TotalPages != 5 {
		t.Errorf("totalPages = %d, expected 5", resp.Pagination.TotalPages)
	}
	if resp.Pagination.Page != 2 || resp.Pagination.Limit != 10 || resp.Pagination.Total != 45 {
		t.Errorf("pagination = %+v", resp.Pagination)
	}
}

func TestSuccessAndErrorResponsesCarryNoPagination(t *testing.T) {
	if resp := SuccessResponse("x", "ok"); resp.Pagination != nil || !resp.Success {
		t.Errorf("success envelope = %+v", resp)
	}
	if resp := ErrorResponse("boom"); resp.Pagination != nil || resp.Success || resp.Error != "boom" {
		t.Errorf("error envelope = %+v", resp)
	}
}
