package testinfra

// warehouseSchema provisions the external warehouse contract for tests.
// Identifiers are quoted because the schema predates this loader and uses
// mixed-case names.
const warehouseSchema = `
CREATE TABLE "Provider" (
    "ProviderID" bigint GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    "Name"       text NOT NULL,
    "Region"     text NOT NULL,
    "Specialty"  text,
    UNIQUE ("Name", "Region")
);

CREATE TABLE "Patient" (
    "PatientID" bigint GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    "FirstName" text NOT NULL,
    "LastName"  text NOT NULL,
    "BirthDate" timestamp NOT NULL,
    "Gender"    text,
    UNIQUE ("FirstName", "LastName", "BirthDate")
);

CREATE TABLE "Claim" (
    "ClaimID"       bigint GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    "PatientID"     bigint NOT NULL REFERENCES "Patient" ("PatientID"),
    "ProviderID"    bigint NOT NULL REFERENCES "Provider" ("ProviderID"),
    "AmountBilled"  numeric(12,2),
    "AmountPaid"    numeric(12,2),
    "Status"        text,
    "DateSubmitted" timestamp,
    "DatePaid"      timestamp,
    UNIQUE ("PatientID", "ProviderID", "DateSubmitted")
);

CREATE TABLE "Reject_Claim" (
    "RejectID"         bigint GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    "RunID"            bigint NOT NULL,
    "Reason"           text,
    "PatientFirstName" text,
    "PatientLastName"  text,
    "PatientBirthDate" timestamp,
    "ProviderName"     text,
    "ProviderRegion"   text,
    "AmountBilled"     numeric(12,2)
);

CREATE TABLE "ETL_Run" (
    "RunID"            bigint GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    "StartedAt"        timestamptz NOT NULL DEFAULT now(),
    "EndedAt"          timestamptz,
    "Status"           text NOT NULL DEFAULT 'RUNNING',
    "StgProviderCount" bigint NOT NULL DEFAULT 0,
    "StgPatientCount"  bigint NOT NULL DEFAULT 0,
    "StgClaimCount"    bigint NOT NULL DEFAULT 0,
    "ProviderCount"    bigint NOT NULL DEFAULT 0,
    "PatientCount"     bigint NOT NULL DEFAULT 0,
    "ClaimCount"       bigint NOT NULL DEFAULT 0,
    "RejectTotal"      bigint NOT NULL DEFAULT 0
);

CREATE TABLE "StgProvider" (
    "Name"      text,
    "Region"    text,
    "Specialty" text
);

CREATE TABLE "StgPatient" (
    "FirstName" text,
    "LastName"  text,
    "BirthDate" timestamp,
    "Gender"    text
);

CREATE TABLE "StgClaim" (
    "PatientFirstName" text,
    "PatientLastName"  text,
    "PatientBirthDate" timestamp,
    "ProviderName"     text,
    "ProviderRegion"   text,
    "AmountBilled"     numeric(12,2),
    "AmountPaid"       numeric(12,2),
    "Status"           text,
    "DateSubmitted"    timestamp,
    "DatePaid"         timestamp
);

CREATE PROCEDURE sp_upsert_provider()
LANGUAGE sql
AS $$
    INSERT INTO "Provider" ("Name", "Region", "Specialty")
    SELECT DISTINCT "Name", "Region", "Specialty"
      FROM "StgProvider"
     WHERE "Name" IS NOT NULL AND "Region" IS NOT NULL
    ON CONFLICT ("Name", "Region")
    DO UPDATE SET "Specialty" = EXCLUDED."Specialty";
$$;

CREATE PROCEDURE sp_upsert_patient()
LANGUAGE sql
AS $$
    INSERT INTO "Patient" ("FirstName", "LastName", "BirthDate", "Gender")
    SELECT DISTINCT "FirstName", "LastName", "BirthDate", "Gender"
      FROM "StgPatient"
     WHERE "FirstName" IS NOT NULL AND "LastName" IS NOT NULL AND "BirthDate" IS NOT NULL
    ON CONFLICT ("FirstName", "LastName", "BirthDate")
    DO UPDATE SET "Gender" = EXCLUDED."Gender";
$$;

CREATE PROCEDURE sp_upsert_claim(run_id bigint)
LANGUAGE plpgsql
AS $$
BEGIN
    INSERT INTO "Claim"
        ("PatientID", "ProviderID", "AmountBilled", "AmountPaid",
         "Status", "DateSubmitted", "DatePaid")
    SELECT p."PatientID", pr."ProviderID", s."AmountBilled", s."AmountPaid",
           s."Status", s."DateSubmitted", s."DatePaid"
      FROM "StgClaim" s
      JOIN "Patient"  p  ON p."FirstName" = s."PatientFirstName"
                        AND p."LastName"  = s."PatientLastName"
                        AND p."BirthDate" = s."PatientBirthDate"
      JOIN "Provider" pr ON pr."Name"   = s."ProviderName"
                        AND pr."Region" = s."ProviderRegion"
    ON CONFLICT ("PatientID", "ProviderID", "DateSubmitted")
    DO UPDATE SET "AmountBilled" = EXCLUDED."AmountBilled",
                  "AmountPaid"   = EXCLUDED."AmountPaid",
                  "Status"       = EXCLUDED."Status",
                  "DatePaid"     = EXCLUDED."DatePaid";

    INSERT INTO "Reject_Claim"
        ("RunID", "Reason", "PatientFirstName", "PatientLastName",
         "PatientBirthDate", "ProviderName", "ProviderRegion", "AmountBilled")
    SELECT run_id, 'unresolved natural key',
           s."PatientFirstName", s."PatientLastName", s."PatientBirthDate",
           s."ProviderName", s."ProviderRegion", s."AmountBilled"
      FROM "StgClaim" s
     WHERE NOT EXISTS (
               SELECT 1 FROM "Patient" p
                WHERE p."FirstName" = s."PatientFirstName"
                  AND p."LastName"  = s."PatientLastName"
                  AND p."BirthDate" = s."PatientBirthDate")
        OR NOT EXISTS (
               SELECT 1 FROM "Provider" pr
                WHERE pr."Name"   = s."ProviderName"
                  AND pr."Region" = s."ProviderRegion");
END;
$$;
`
